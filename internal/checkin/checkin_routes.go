package checkin

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-readiness/internal/middleware"
	"go-readiness/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer, rdb *redis.Client) {
	checkins := r.Group("/checkins")
	checkins.Use(middleware.AuthMiddleware())
	{
		checkins.GET("", rbac.Authorize(enforcer, "checkin", "read"), h.GetMine)
		checkins.POST("",
			rbac.Authorize(enforcer, "checkin", "create"),
			middleware.Idempotency(rdb),
			h.Submit,
		)
		checkins.GET("/:id/audit", rbac.Authorize(enforcer, "checkin", "audit"), h.Audit)
	}
}

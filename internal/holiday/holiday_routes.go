package holiday

import (
	"github.com/gin-gonic/gin"

	"go-readiness/internal/middleware"
	"go-readiness/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", rbac.Authorize(enforcer, "holiday", "read"), h.GetAll)
		holidays.POST("", rbac.Authorize(enforcer, "holiday", "create"), h.Create)
		holidays.DELETE("/:id", rbac.Authorize(enforcer, "holiday", "delete"), h.Delete)
	}
}

package leave

import (
	"github.com/gin-gonic/gin"

	"go-readiness/internal/middleware"
	"go-readiness/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(enforcer, "leave", "read"), h.GetMine)
		leaves.GET("/status", rbac.Authorize(enforcer, "leave", "read"), h.GetStatus)
		leaves.GET("/status/:userId", rbac.Authorize(enforcer, "leave", "review"), h.GetStatus)
		leaves.POST("", rbac.Authorize(enforcer, "leave", "create"), h.Create)
		leaves.POST("/:id/approve", rbac.Authorize(enforcer, "leave", "review"), h.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(enforcer, "leave", "review"), h.Reject)
	}
}

package summary

import (
	"github.com/gin-gonic/gin"

	"go-readiness/internal/middleware"
	"go-readiness/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	summaries := r.Group("/summaries")
	summaries.Use(middleware.AuthMiddleware())
	{
		summaries.GET("/team/:teamId/date/:date", rbac.Authorize(enforcer, "summary", "read"), h.GetTeamDate)
		summaries.GET("/team/:teamId", rbac.Authorize(enforcer, "summary", "read"), h.GetTeamRange)
		summaries.GET("/company/date/:date", rbac.Authorize(enforcer, "summary", "read"), h.GetCompanyDate)
		summaries.POST("/team/:teamId/date/:date/recalculate", rbac.Authorize(enforcer, "summary", "recalculate"), h.Recalculate)
	}
}

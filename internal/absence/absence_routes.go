package absence

import (
	"github.com/gin-gonic/gin"

	"go-readiness/internal/middleware"
	"go-readiness/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	absences := r.Group("/absences")
	absences.Use(middleware.AuthMiddleware())
	{
		absences.POST("/detect", rbac.Authorize(enforcer, "absence", "detect"), h.Detect)
		absences.POST("/detect/team/:teamId", rbac.Authorize(enforcer, "absence", "detect_team"), h.DetectTeam)
		absences.GET("/pending", rbac.Authorize(enforcer, "absence", "read"), h.GetPendingJustifications)
		absences.GET("/history", rbac.Authorize(enforcer, "absence", "read"), h.GetHistory)
		absences.GET("/counts", rbac.Authorize(enforcer, "absence", "read"), h.GetStatusCounts)
		absences.GET("/blocking", rbac.Authorize(enforcer, "absence", "read"), h.GetBlocking)
		absences.GET("/review/team/:teamId", rbac.Authorize(enforcer, "absence", "review"), h.GetPendingReviews)
		absences.PATCH("/:id/justify", rbac.Authorize(enforcer, "absence", "justify"), h.Justify)
		absences.PATCH("/:id/review", rbac.Authorize(enforcer, "absence", "review"), h.Review)
	}
}

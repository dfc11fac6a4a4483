package grading

import (
	"github.com/gin-gonic/gin"

	"go-readiness/internal/middleware"
	"go-readiness/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	grades := r.Group("/grades")
	grades.Use(middleware.AuthMiddleware())
	{
		grades.GET("/me", rbac.Authorize(enforcer, "grading", "read_self"), h.GetMyGrade)
		grades.GET("/team/:teamId", rbac.Authorize(enforcer, "grading", "read_team"), h.GetTeamGrade)
		grades.GET("/worker/:userId", rbac.Authorize(enforcer, "grading", "read_team"), h.GetWorkerGrade)
	}
}

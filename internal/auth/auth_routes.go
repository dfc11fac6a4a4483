package auth

import (
	"github.com/gin-gonic/gin"

	"go-readiness/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), h.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), h.RefreshToken)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), h.Me)
	}
}

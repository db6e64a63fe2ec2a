package auth

import (
	"go-geoattend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		admin.POST("/logout", handler.Logout)
		admin.GET("/me", middleware.AuthMiddleware(jwtSecret), handler.Me)
	}
}

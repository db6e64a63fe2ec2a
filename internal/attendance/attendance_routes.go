package attendance

import (
	"go-geoattend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	rdb *redis.Client,
) {
	r.GET("/enrollment", handler.Enrollment)

	submissions := r.Group("/attendance")
	submissions.Use(middleware.RateLimitByIP(rate.Limit(2), 5), middleware.Idempotency(rdb))
	{
		submissions.POST("/submit", handler.Submit)
	}

	admin := r.Group("/admin/attendance")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RateLimitBySubject(rate.Limit(5), 20))
	{
		admin.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Daily)
		admin.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "export"), handler.Export)
	}
}

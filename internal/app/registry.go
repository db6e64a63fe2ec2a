package app

import (
	"context"
	"net/http"

	"go-geoattend/internal/attendance"
	"go-geoattend/internal/auth"
	"go-geoattend/internal/bootstrap"
	"go-geoattend/internal/config"
	"go-geoattend/internal/geofence"
	"go-geoattend/internal/messaging/kafka"
	"go-geoattend/internal/middleware"
	"go-geoattend/internal/rbac"
	"go-geoattend/internal/rbac/infra"
	"go-geoattend/internal/roster"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	log := zap.L().Named("app.registry")

	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	rosterRepo := roster.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)

	// --- Geofence ---
	fence, err := geofence.NewFence(
		geofence.Point{Latitude: cfg.Geofence.Latitude, Longitude: cfg.Geofence.Longitude},
		cfg.Geofence.RadiusKm,
	)
	if err != nil {
		return err
	}

	// --- RBAC Core ---
	enforcer, err := infra.NewDefaultEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Admin credential ---
	passwordHash := cfg.Admin.PasswordHash
	if passwordHash == "" {
		if cfg.UsesDefaultAdminPassword() {
			bootstrap.NewStdoutAuditLogger().Log(context.Background(), bootstrap.AuditLog{
				Action:  bootstrap.AuditAdminDefault,
				Message: "ADMIN_PASSWORD not set, the default admin password is active",
			})
		}
		passwordHash, err = auth.HashPassword(cfg.AdminPassword())
		if err != nil {
			return err
		}
	}

	// --- Services ---
	opts := []attendance.Option{attendance.WithCache(rdb)}
	if cfg.Kafka.Broker != "" {
		opts = append(opts, attendance.WithOutbox(kafka.NewOutboxRepository(db)))
	} else {
		log.Info("KAFKA_BROKER not set, attendance events are not recorded")
	}
	attendanceService := attendance.NewService(db, rosterRepo, attendanceRepo, fence, opts...)
	authService := auth.NewService(passwordHash, cfg.Admin.JWTSecret)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, cfg.EnrollmentURL)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, cfg.Admin.JWTSecret, rdb)
		auth.RegisterRoutes(api, authHandler, cfg.Admin.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, cfg.Admin.JWTSecret)
	}

	return nil
}

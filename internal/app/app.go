package app

import (
	"context"
	"fmt"

	"go-geoattend/internal/attendance"
	"go-geoattend/internal/config"
	"go-geoattend/internal/messaging/kafka"
	"go-geoattend/internal/roster"
	"go-geoattend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DatabaseDSN builds the connection string for the configured driver.
func DatabaseDSN(cfg *config.Config) string {
	if cfg.Database.Driver == config.DriverPostgres {
		return connection.PostgresDSN(
			cfg.Database.Host,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.DBName,
			cfg.Database.Port,
			cfg.Database.SSLMode,
		)
	}
	return connection.SQLiteDSN(cfg.Database.Path)
}

// Migrate creates the roster, ledger and outbox tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&roster.Identity{}, &attendance.Record{}, &kafka.OutboxEvent{})
}

// BuildApp connects the stores, prepares the schema and registers every
// route on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	log := zap.L().Named("app")

	db, err := connection.ConnectGORMWithRetry(cfg.Database.Driver, DatabaseDSN(cfg), 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if _, err := roster.Seed(context.Background(), roster.NewRepository(db), roster.DefaultIdentities); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed roster: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info("redis connection established")
	} else {
		log.Info("REDIS_ADDR not set, report cache and idempotency disabled")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	if err := registerModules(router, cfg, db, rdb); err != nil {
		cleanup()
		return nil, err
	}
	return cleanup, nil
}

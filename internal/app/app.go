package app

import (
	"context"
	"net/http"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func postgresConfig(cfg *config.Config) connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Port:     cfg.Database.Port,
		SSLMode:  cfg.Database.SSLMode,
	}
}

// mountRouter installs the global middleware and returns the authenticated
// /api/v1 group. ContextLogger must follow AuthMiddleware.
func mountRouter(router *gin.Engine, cfg *config.Config, reg *prometheus.Registry) *gin.RouterGroup {
	router.Use(
		middleware.RequestID(),
		middleware.NewHTTPMetrics(reg).Middleware(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	)
	router.GET("/metrics", middleware.MetricsHandler(reg))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ContextLogger(zap.L()),
	)
	return api
}

// BuildApp connects the stores, migrates the schema when enabled and mounts
// every module on router. The returned func releases the connections.
func BuildApp(ctx context.Context, cfg *config.Config, router *gin.Engine) (func(), error) {
	logger := zap.L().Named("app")

	db, err := connection.ConnectGORMWithRetry(postgresConfig(cfg), cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("schema migrated")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	api := mountRouter(router, cfg, reg)

	if err := registerModules(ctx, api, db, rdb); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

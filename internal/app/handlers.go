package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apphttp "github.com/yungbote/learnosphere-backend/internal/http"
	httpH "github.com/yungbote/learnosphere-backend/internal/http/handlers"
	"github.com/yungbote/learnosphere-backend/internal/observability"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Enrollment *httpH.EnrollmentHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	checks := map[string]httpH.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if clients.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return clients.Redis.Ping(ctx).Err()
		}
	}
	return Handlers{
		Health:     httpH.NewHealthHandler(checks),
		Enrollment: httpH.NewEnrollmentHandler(services.Enrollment),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	traceService := ""
	if cfg.Observability.OtelEnabled {
		traceService = cfg.Observability.OtelServiceName
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		TraceServiceName:  traceService,
		EnrollmentHandler: handlers.Enrollment,
		HealthHandler:     handlers.Health,
	})
}

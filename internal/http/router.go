package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/learnosphere-backend/internal/http/handlers"
	httpMW "github.com/yungbote/learnosphere-backend/internal/http/middleware"
	"github.com/yungbote/learnosphere-backend/internal/observability"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

const metricsPath = "/metrics"

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// TraceServiceName enables otelgin spans when non-empty.
	TraceServiceName string

	EnrollmentHandler *httpH.EnrollmentHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TraceServiceName != "" {
		r.Use(otelgin.Middleware(cfg.TraceServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsPath))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.AttachCredential())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Enrollment
		if cfg.EnrollmentHandler != nil {
			api.POST("/enrollment", cfg.EnrollmentHandler.SetEnrollment)
			api.GET("/enrollments/:uid", cfg.EnrollmentHandler.ListEnrollments)
			api.GET("/learners/:uid", cfg.EnrollmentHandler.GetLearner)
		}
	}

	return r
}

package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateAborts    *CounterVec
	courseLockWait     *HistogramVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	scrapeInterval time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Current() *Metrics {
	return instance
}

// Init installs the process-wide metrics registry. It returns nil when metrics are disabled;
// every Metrics method is nil-safe.
func Init(log *logger.Logger, cfg Config) *Metrics {
	if !cfg.MetricsEnabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(cfg)
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

// NewMetrics builds an unregistered metrics set.
func NewMetrics(cfg Config) *Metrics {
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("ls_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"ls_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("ls_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("ls_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("ls_api_requests_error_total", "Total API requests with 5xx status."),
		aggregateOps: NewCounterVec(
			"ls_aggregate_operations_total",
			"Aggregate write operations by operation/status.",
			[]string{"operation", "status"},
		),
		aggregateLatency: NewHistogramVec(
			"ls_aggregate_operation_duration_seconds",
			"Aggregate write latency in seconds by operation/status.",
			[]string{"operation", "status"},
			[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		aggregateConflicts: NewCounterVec(
			"ls_aggregate_conflicts_total",
			"Aggregate writes rejected by a domain precondition (already enrolled, not enrolled, capacity).",
			[]string{"operation"},
		),
		aggregateAborts: NewCounterVec(
			"ls_aggregate_aborts_total",
			"Units of work rolled back by operation.",
			[]string{"operation"},
		),
		courseLockWait: NewHistogramVec(
			"ls_course_lock_wait_seconds",
			"Time spent waiting for the per-course lock.",
			[]string{"operation"},
			[]float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		),
		dbStats:        NewGaugeVec("ls_db_stats", "Database connection pool stats.", []string{"metric"}),
		redisUp:        NewGauge("ls_redis_up", "Redis connectivity (1=up, 0=down)."),
		redisPing:      NewGauge("ls_redis_ping_seconds", "Redis ping latency in seconds."),
		scrapeInterval: interval,
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []collector{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiReqTotal,
		m.apiReqError,
		m.aggregateOps,
		m.aggregateLatency,
		m.aggregateConflicts,
		m.aggregateAborts,
		m.courseLockWait,
		m.dbStats,
		m.redisUp,
		m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.aggregateOps.Inc(name, status)
	m.aggregateLatency.Observe(dur.Seconds(), name, status)
}

func (m *Metrics) IncAggregateConflict(name string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.Inc(name)
}

func (m *Metrics) IncAggregateAbort(name string) {
	if m == nil {
		return
	}
	m.aggregateAborts.Inc(name)
}

func (m *Metrics) ObserveCourseLockWait(name string, dur time.Duration) {
	if m == nil {
		return
	}
	m.courseLockWait.Observe(dur.Seconds(), name)
}

// StartDBCollector samples database/sql pool stats until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

// StartRedisCollector pings the shared lock client until ctx is done. The client is owned
// by the caller and is not closed here.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

func isServerErrorStatus(status string) bool {
	status = strings.TrimSpace(status)
	if len(status) < 3 {
		return false
	}
	return status[0] == '5'
}

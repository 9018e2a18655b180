package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/learnosphere-backend/internal/observability"
)

// Hooks receives one event per finished write, per lock wait, and per failure class.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	ObserveLockWait(name string, dur time.Duration)
	IncConflict(name string)
	IncAbort(name string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) ObserveLockWait(string, time.Duration)          {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncAbort(string)                                {}

// metricsHooks forwards events to the process metrics registry.
type metricsHooks struct {
	m *observability.Metrics
}

// NewObservabilityHooks returns hooks backed by metrics, or no-op hooks when metrics are disabled.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return metricsHooks{m: metrics}
}

func opLabel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "aggregate.write"
	}
	return name
}

func (h metricsHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.m.ObserveAggregateOperation(opLabel(name), strings.TrimSpace(status), dur)
}

func (h metricsHooks) ObserveLockWait(name string, dur time.Duration) {
	h.m.ObserveCourseLockWait(opLabel(name), dur)
}

func (h metricsHooks) IncConflict(name string) { h.m.IncAggregateConflict(opLabel(name)) }

func (h metricsHooks) IncAbort(name string) { h.m.IncAggregateAbort(opLabel(name)) }

package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"github.com/yungbote/learnosphere-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// DefaultTxTimeout bounds lock wait plus the whole unit of work.
const DefaultTxTimeout = 5 * time.Second

type BaseDeps struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Runner    TxRunner
	Hooks     Hooks
	Locker    CourseLocker
	TxTimeout time.Duration
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Locker == nil {
		d.Locker = NewMemoryCourseLocker()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.TxTimeout <= 0 {
		d.TxTimeout = DefaultTxTimeout
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)
	observeOutcome(deps, op, mapped, time.Since(start))
	return mapped
}

// executeLockedWrite runs fn in a unit of work while holding the course lock. The timeout
// covers lock wait, every statement and commit; on expiry the transaction is rolled back
// and the lock released before returning.
func executeLockedWrite(ctx context.Context, deps BaseDeps, op string, courseID uuid.UUID, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, deps.TxTimeout)
	defer cancel()

	waitStart := time.Now()
	unlock, err := deps.Locker.Lock(ctx, courseID)
	deps.Hooks.ObserveLockWait(op, time.Since(waitStart))
	if err != nil {
		mapped := MapError(op, fmt.Errorf("acquire course lock: %w", err))
		observeOutcome(deps, op, mapped, time.Since(waitStart))
		return mapped
	}
	defer unlock()

	return executeWrite(ctx, deps, op, fn)
}

func observeOutcome(deps BaseDeps, op string, mapped error, dur time.Duration) {
	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		deps.Hooks.IncAbort(op)
		if isConflictCode(domainagg.CodeOf(mapped)) {
			deps.Hooks.IncConflict(op)
		}
	}
	deps.Hooks.ObserveOperation(op, status, dur)
}

func isConflictCode(code domainagg.ErrorCode) bool {
	switch code {
	case domainagg.CodeAlreadyEnrolled, domainagg.CodeNotEnrolled, domainagg.CodeCapacityExhausted:
		return true
	default:
		return false
	}
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}

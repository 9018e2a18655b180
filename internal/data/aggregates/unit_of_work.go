package aggregates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// UnitOfWork is the explicit transaction boundary for aggregate writes.
// Every mutation issued through a handle's DBC is committed or rolled back together.
type UnitOfWork interface {
	Begin(ctx context.Context) (*TxHandle, error)
	// Commit makes every tagged mutation visible. A vetoed handle is rolled back instead
	// and the veto cause is returned.
	Commit(h *TxHandle) error
	// Abort rolls back. It is safe to call after Commit or more than once.
	Abort(h *TxHandle) error
}

// TxHandle tags mutations with one open transaction.
type TxHandle struct {
	ctx context.Context
	tx  *gorm.DB

	mu     sync.Mutex
	veto   error
	closed bool
}

// DBC returns the context every mutating repo call must receive.
func (h *TxHandle) DBC() dbctx.Context {
	return dbctx.Context{Ctx: h.ctx, Tx: h.tx}
}

// Veto records a failed mutation; the first cause wins.
func (h *TxHandle) Veto(err error) {
	if h == nil || err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.veto == nil {
		h.veto = err
	}
}

func (h *TxHandle) Vetoed() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.veto
}

func (h *TxHandle) markClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.closed = true
	return true
}

type gormUnitOfWork struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewGormUnitOfWork returns a unit of work over GORM transactions at the given isolation.
// sql.LevelDefault leaves isolation to the driver.
func NewGormUnitOfWork(db *gorm.DB, isolation sql.IsolationLevel) UnitOfWork {
	u := &gormUnitOfWork{db: db}
	if isolation != sql.LevelDefault {
		u.opts = &sql.TxOptions{Isolation: isolation}
	}
	return u
}

func (u *gormUnitOfWork) Begin(ctx context.Context) (*TxHandle, error) {
	if u == nil || u.db == nil {
		return nil, errors.New("unit of work has nil db")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var tx *gorm.DB
	if u.opts != nil {
		tx = u.db.WithContext(ctx).Begin(u.opts)
	} else {
		tx = u.db.WithContext(ctx).Begin()
	}
	if tx.Error != nil {
		return nil, fmt.Errorf("begin: %w", tx.Error)
	}
	return &TxHandle{ctx: ctx, tx: tx}, nil
}

func (u *gormUnitOfWork) Commit(h *TxHandle) error {
	if h == nil || !h.markClosed() {
		return ErrHandleClosed
	}
	if veto := h.Vetoed(); veto != nil {
		_ = h.tx.Rollback().Error
		return veto
	}
	if err := h.tx.Commit().Error; err != nil {
		_ = h.tx.Rollback().Error
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (u *gormUnitOfWork) Abort(h *TxHandle) error {
	if h == nil || !h.markClosed() {
		return nil
	}
	if err := h.tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// ParseIsolation maps a config value to a database/sql isolation level.
func ParseIsolation(raw string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "-", "_"))) {
	case "", "default":
		return sql.LevelDefault, nil
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", raw)
	}
}

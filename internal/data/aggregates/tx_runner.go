package aggregates

import (
	"context"
	"database/sql"

	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// TxRunner provides a shared transaction boundary primitive for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type uowTxRunner struct {
	uow UnitOfWork
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions at the driver's
// default isolation.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &uowTxRunner{uow: NewGormUnitOfWork(db, sql.LevelDefault)}
}

// NewTxRunner composes Begin, fn and Commit-or-Abort over uow.
func NewTxRunner(uow UnitOfWork) TxRunner {
	return &uowTxRunner{uow: uow}
}

func (r *uowTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.uow == nil {
		return domainagg.NewError(domainagg.CodeTransactionFailed, "aggregate.tx", "transaction runner has nil unit of work", nil)
	}
	h, err := r.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = r.uow.Abort(h)
			panic(p)
		}
	}()
	if err := fn(h.DBC()); err != nil {
		h.Veto(err)
		_ = r.uow.Abort(h)
		return err
	}
	return r.uow.Commit(h)
}

package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/learnosphere-backend/internal/data/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/platform/dbctx"
)

// InjectedTxRunner is a test helper for aggregate integration tests.
// With Inner set, the body runs inside a real transaction and an injected commit failure
// is raised inside it, so the database rolls back exactly as on a failed commit.
// Without Inner the body runs with no transaction.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner aggregates.TxRunner

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	inner := r.Inner
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	body := func(dbc dbctx.Context) error {
		if failBeforeBody != nil {
			return failBeforeBody
		}
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failCommit
	}

	var err error
	if inner != nil {
		err = inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}

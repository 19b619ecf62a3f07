package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// InjectedTxRunner runs real gorm transactions with failure injection.
// FailBegin fails before a transaction starts. FailCommit lets the body run
// and then forces a rollback, as if the commit had been refused.
type InjectedTxRunner struct {
	DB *gorm.DB

	mu         sync.Mutex
	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		return failCommit
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
	} else {
		r.CommitCalls++
	}
	return err
}

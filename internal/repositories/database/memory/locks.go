package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
)

type rowKind int

const (
	rowCreditRequest rowKind = iota + 1
	rowAccount
	rowTarget
)

type rowKey struct {
	kind rowKind
	id   string
}

func (k rowKey) String() string {
	switch k.kind {
	case rowCreditRequest:
		return "credit_request(" + k.id + ")"
	case rowAccount:
		return "account(" + k.id + ")"
	case rowTarget:
		return "target(" + k.id + ")"
	}
	return "row(" + k.id + ")"
}

// rowLocks hands out one exclusive lock per row. Each lock is a channel with
// capacity one so that acquisition can wait on a timer and the context.
type rowLocks struct {
	mu    sync.Mutex
	slots map[rowKey]chan struct{}
}

func newRowLocks() *rowLocks {
	return &rowLocks{slots: make(map[rowKey]chan struct{})}
}

func (l *rowLocks) slot(key rowKey) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// acquire blocks until the row lock is free, timeout elapses or ctx ends.
// The last two are transient faults.
func (l *rowLocks) acquire(ctx context.Context, key rowKey, timeout time.Duration) error {
	ch := l.slot(key)

	select {
	case ch <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: lock on %s not acquired within %s", apperrors.ErrTransient, key, timeout)
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for lock on %s: %v", apperrors.ErrTransient, key, ctx.Err())
	}
}

func (l *rowLocks) release(key rowKey) {
	<-l.slot(key)
}

func unixNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

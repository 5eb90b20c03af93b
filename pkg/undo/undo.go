// Package undo records compensating actions for in-memory state changes so a
// multi-step operation can be reverted as a unit.
//
// A Log travels in the context the same way a database transaction does in
// pkg/postgresql. Components that mutate memory call Record with the inverse of
// the change; the owner of the unit calls Rollback on failure or Commit on success.
package undo

import (
	"context"
	"sync"
)

type contextKey struct{}

// Log is an ordered list of compensations and post-commit hooks. The zero value
// is ready to use and a nil *Log ignores every call.
type Log struct {
	mu       sync.Mutex
	undo     []func()
	onCommit []func(ctx context.Context)
	closed   bool
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Record appends a compensation. Compensations run in reverse order on Rollback.
func (l *Log) Record(fn func()) {
	if l == nil || fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.undo = append(l.undo, fn)
}

// OnCommit appends a hook that runs, in order, after a successful Commit.
func (l *Log) OnCommit(fn func(ctx context.Context)) {
	if l == nil || fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.onCommit = append(l.onCommit, fn)
}

// Len returns the number of pending compensations.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo)
}

// Rollback runs every compensation newest first and discards commit hooks.
// It is a no-op after Commit or a previous Rollback.
func (l *Log) Rollback() {
	if l == nil {
		return
	}
	l.mu.Lock()
	undo := l.undo
	closed := l.closed
	l.undo, l.onCommit, l.closed = nil, nil, true
	l.mu.Unlock()

	if closed {
		return
	}
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

// Commit drops the compensations and runs the commit hooks.
// It is a no-op after Rollback or a previous Commit.
func (l *Log) Commit(ctx context.Context) {
	if l == nil {
		return
	}
	l.mu.Lock()
	hooks := l.onCommit
	closed := l.closed
	l.undo, l.onCommit, l.closed = nil, nil, true
	l.mu.Unlock()

	if closed {
		return
	}
	for _, fn := range hooks {
		fn(ctx)
	}
}

// WithLog returns a context carrying l.
func WithLog(ctx context.Context, l *Log) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the Log carried by ctx, or nil.
func FromContext(ctx context.Context) *Log {
	l, _ := ctx.Value(contextKey{}).(*Log)
	return l
}

// Record appends fn to the Log carried by ctx. Without a Log the change is final
// and fn is dropped.
func Record(ctx context.Context, fn func()) {
	FromContext(ctx).Record(fn)
}

// OnCommit registers fn on the Log carried by ctx. Without a Log fn runs immediately.
func OnCommit(ctx context.Context, fn func(ctx context.Context)) {
	if l := FromContext(ctx); l != nil {
		l.OnCommit(fn)
		return
	}
	fn(ctx)
}

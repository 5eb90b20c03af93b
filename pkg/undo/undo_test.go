package undo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_Rollback(t *testing.T) {
	var steps []int
	l := New()
	l.Record(func() { steps = append(steps, 1) })
	l.Record(func() { steps = append(steps, 2) })
	l.OnCommit(func(context.Context) { t.Fatal("commit hook must not run after rollback") })
	assert.Equal(t, 2, l.Len())

	l.Rollback()
	assert.Equal(t, []int{2, 1}, steps)

	// closed logs ignore further calls
	l.Rollback()
	l.Commit(context.Background())
	l.Record(func() { steps = append(steps, 3) })
	assert.Equal(t, []int{2, 1}, steps)
	assert.Equal(t, 0, l.Len())
}

func TestLog_Commit(t *testing.T) {
	var hooks []string
	l := New()
	l.Record(func() { t.Fatal("compensation must not run after commit") })
	l.OnCommit(func(context.Context) { hooks = append(hooks, "a") })
	l.OnCommit(func(context.Context) { hooks = append(hooks, "b") })

	l.Commit(context.Background())
	assert.Equal(t, []string{"a", "b"}, hooks)

	l.Rollback()
	assert.Equal(t, []string{"a", "b"}, hooks)
}

func TestContextHelpers(t *testing.T) {
	t.Run("without log", func(t *testing.T) {
		ctx := context.Background()
		assert.Nil(t, FromContext(ctx))

		ran := false
		Record(ctx, func() { ran = true })
		assert.False(t, ran)

		OnCommit(ctx, func(context.Context) { ran = true })
		assert.True(t, ran)
	})

	t.Run("with log", func(t *testing.T) {
		l := New()
		ctx := WithLog(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))

		undone, committed := false, false
		Record(ctx, func() { undone = true })
		OnCommit(ctx, func(context.Context) { committed = true })
		assert.False(t, committed)

		l.Rollback()
		assert.True(t, undone)
		assert.False(t, committed)
	})

	t.Run("nil log is inert", func(t *testing.T) {
		var l *Log
		l.Record(func() {})
		l.OnCommit(func(context.Context) {})
		l.Rollback()
		l.Commit(context.Background())
		assert.Equal(t, 0, l.Len())
	})
}

package util

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithRequestID(t *testing.T) {
	t.Run("keeps given id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")
		assert.Equal(t, "req-1", GetRequestID(ctx))
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "")
		_, err := uuid.Parse(GetRequestID(ctx))
		assert.NoError(t, err)
	})

	t.Run("empty when unset", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()))
	})
}

func TestFields(t *testing.T) {
	ctx := WithActorID(WithRequestID(context.Background(), "req-2"), "alice")
	ctx = WithClientIP(ctx, "10.0.0.1")

	fields := Fields(ctx)
	assert.Equal(t, "req-2", fields["request_id"])
	assert.Equal(t, "alice", fields["actor_id"])
	assert.Equal(t, "10.0.0.1", fields["client_ip"])
	assert.Equal(t, "", GetEventID(ctx))
}

package util

import (
	"context"
)

type key string

const (
	clientIPKey = key("x-forwarded-for")
	actorIDKey  = key("actor-id")
	eventIDKey  = key("event-id")
)

// Fields returns a map of the key-value pairs that this library has set into `context`.
func Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["request_id"] = GetRequestID(ctx)
	mapFields["client_ip"] = GetClientIP(ctx)
	mapFields["actor_id"] = GetActorID(ctx)

	return mapFields
}

// WithClientIP returns a context with a client ip
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// WithActorID returns a context carrying the trader or operator acting on the exchange.
func WithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorIDKey, id)
}

// WithEventID returns a context with event id
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey, id)
}

// GetClientIP returns client ip from context
// will return empty string if not present
func GetClientIP(ctx context.Context) string {
	id, _ := ctx.Value(clientIPKey).(string)
	return id
}

// GetActorID returns the acting trader from context
// will return empty string if not present
func GetActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorIDKey).(string)
	return id
}

// GetEventID returns event id from context
// will return empty string if not present
func GetEventID(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey).(string)
	return id
}

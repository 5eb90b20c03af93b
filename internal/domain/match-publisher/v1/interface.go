package matchpublisherv1

import (
	"context"
)

// MatchPublisher defines the interface for publishing trade events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchpublisherv1_mock
type MatchPublisher interface {
	// PublishTradeEvents publishes trade events to the Kafka topic.
	PublishTradeEvents(ctx context.Context, events ...*TradeEvent) error
	// Close flushes pending writes.
	Close() error
}

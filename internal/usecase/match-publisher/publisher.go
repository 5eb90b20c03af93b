package matchpublisher

import (
	"context"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/config"
	matchpublisherv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/match-publisher/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher represents a Kafka Publisher for publishing trade events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

var _ matchpublisherv1.MatchPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for publishing trade events.
// Events are keyed by pair so one pair's trades stay ordered.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

func toMessages(events []*matchpublisherv1.TradeEvent) []kafka.Message {
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		if event == nil {
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.Pair),
			Value: matchpublisherv1.ToBytes(event),
			Time:  event.Timestamp,
		})
	}
	return msgs
}

// PublishTradeEvents publishes trade events to the Kafka topic.
func (p *Publisher) PublishTradeEvents(ctx context.Context, events ...*matchpublisherv1.TradeEvent) error {
	msgs := toMessages(events)
	if len(msgs) == 0 {
		return nil
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.NewField("events", len(msgs)),
			logger.NewField("action", "publish_trade_events"),
		)
		return errors.NewTracer("failed to publish trade events").Wrap(err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}

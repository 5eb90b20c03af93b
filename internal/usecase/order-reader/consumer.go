package orderreader

import (
	"context"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/config"
	orderreaderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order-reader/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader represents a Kafka Reader for consuming messages from the command topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

var _ orderreaderv1.OrderReader = (*Reader)(nil)

// NewReader creates a new Kafka reader for consuming messages from the command topic.
// It reads partition 0 directly; the engine positions it with SetOffset.
func NewReader(cfg config.KafkaConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(ctx context.Context, err error, operation string) {
	r.logger.ErrorContext(ctx, err, logger.NewField("operation", operation))
}

// SetOffset sets the offset for the Kafka reader.
func (r *Reader) SetOffset(offset int64) error {
	if offset < 0 {
		offset = kafka.FirstOffset
	}
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(context.Background(), err, "SetOffset")
		return err
	}
	return nil
}

// ReadMessage reads a message from the Kafka topic and parses it as a command.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderreaderv1.PlaceOrderCommand, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(ctx, err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	cmd, err := decode(msg)
	if err != nil {
		r.logError(ctx, err, "DecodeCommand")
		// the message is returned so the caller can move past it
		return msg, nil, err
	}

	r.logger.DebugContext(ctx, "Command read",
		logger.NewField("offset", msg.Offset),
		logger.NewField("type", cmd.Type),
		logger.NewField("trader", cmd.Trader),
		logger.NewField("pair", cmd.Pair),
	)

	return msg, cmd, nil
}

func decode(msg kafka.Message) (*orderreaderv1.PlaceOrderCommand, error) {
	cmd, err := orderreaderv1.FromBytes(msg.Value)
	if err != nil {
		return nil, err
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	cmd.Offset = msg.Offset
	return cmd, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(context.Background(), err, "Close")
		return err
	}
	return nil
}

// CommitMessages is a no-op: without a consumer group the applied offset is
// carried by book snapshots.
func (r *Reader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	return nil
}

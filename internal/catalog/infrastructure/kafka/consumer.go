package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageHandler func(ctx context.Context, message []byte) error

// StartConsumer runs a manually-acknowledged consumer loop for the lifetime
// of ctx. Messages are committed only after the handler succeeds, so a crash
// before the commit causes redelivery (at-least-once). Broker connectivity
// problems are logged and retried with a backoff; they never take down the
// host process.
func StartConsumer(ctx context.Context, brokers []string, topic, groupID string, handler MessageHandler, l *zap.Logger) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Logger:   zap.NewStdLog(l.With(zap.String("kafka_component", "consumer"))),
	})

	l.Info("Kafka consumer started",
		zap.String("topic", topic),
		zap.String("group_id", groupID),
		zap.Strings("brokers", brokers))

	go func() {
		defer func() {
			if err := reader.Close(); err != nil {
				l.Error("Failed to close Kafka consumer", zap.Error(err))
			} else {
				l.Info("Kafka consumer closed.")
			}
		}()

		for {
			m, err := reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					l.Info("Kafka consumer stopping", zap.Error(ctx.Err()))
					return
				}
				l.Error("Error fetching message from Kafka, retrying", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
				continue
			}

			if err := handler(ctx, m.Value); err != nil {
				l.Error("Error handling Kafka message",
					zap.String("topic", m.Topic),
					zap.Int("partition", m.Partition),
					zap.Int64("offset", m.Offset),
					zap.Error(err))
				continue
			}

			if err := reader.CommitMessages(ctx, m); err != nil {
				l.Error("Failed to commit offset for message",
					zap.String("topic", m.Topic),
					zap.Int("partition", m.Partition),
					zap.Int64("offset", m.Offset),
					zap.Error(err))
			} else {
				l.Debug("Committed message offset",
					zap.String("topic", m.Topic),
					zap.Int("partition", m.Partition),
					zap.Int64("offset", m.Offset))
			}
		}
	}()
}

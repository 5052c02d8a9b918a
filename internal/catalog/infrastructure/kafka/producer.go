package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const dialTimeout = 5 * time.Second

type Producer interface {
	Produce(ctx context.Context, topic, key string, message []byte) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer verifies at least one broker is reachable before handing out a
// writer, so callers can fall back to another publisher at startup instead of
// failing on the first produce.
func NewProducer(brokers []string, l *zap.Logger) (Producer, error) {
	if err := checkBrokers(brokers); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Logger:       zap.NewStdLog(l.With(zap.String("kafka_component", "producer"))),
	}

	l.Info("Kafka producer initialized", zap.Strings("brokers", brokers))
	return &kafkaProducer{writer: writer, logger: l}, nil
}

func checkBrokers(brokers []string) error {
	if len(brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}

	dialer := &kafka.Dialer{Timeout: dialTimeout}
	var lastErr error
	for _, broker := range brokers {
		conn, err := dialer.Dial("tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		conn.Close()
		return nil
	}
	return fmt.Errorf("no Kafka broker reachable: %w", lastErr)
}

func (p *kafkaProducer) Produce(ctx context.Context, topic, key string, message []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: message,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(key)},
		},
	}
	err := p.writer.WriteMessages(ctx, msg)
	if err != nil {
		p.logger.Error("Failed to produce message to Kafka topic",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to produce message: %w", err)
	}
	p.logger.Debug("Produced message to topic", zap.String("topic", topic), zap.String("key", key))
	return nil
}

func (p *kafkaProducer) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka producer", zap.Error(err))
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	p.logger.Info("Kafka producer closed.")
	return nil
}

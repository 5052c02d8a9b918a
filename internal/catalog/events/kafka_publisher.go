package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/catalog/domain"
	"storefront/internal/catalog/infrastructure/kafka"
)

// kafkaPublisher is the broker variant. One producer is opened at startup
// and reused for the process lifetime; every event goes to the bounded
// context's topic with the event tag as message key and `type` header.
type kafkaPublisher struct {
	producer kafka.Producer
	topic    string
	logger   *zap.Logger
}

func NewKafkaPublisher(producer kafka.Producer, topic string, l *zap.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   l.With(zap.String("component", "KafkaEventPublisher")),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}

	if err := p.producer.Produce(ctx, p.topic, event.Type, payload); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventID, err)
	}

	p.logger.Debug("Domain event published to broker",
		zap.String("event_id", event.EventID.String()),
		zap.String("event_type", event.Type),
		zap.String("topic", p.topic))
	return nil
}

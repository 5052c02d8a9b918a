package kafka

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"storefront/internal/catalog/domain"
)

// EventAuditConsumer drains the catalog event stream and records every event
// in the structured log. Returning nil from HandleMessage acknowledges the
// message; a decode failure is logged and acknowledged anyway since the
// message will never become decodable on redelivery.
type EventAuditConsumer struct {
	logger *zap.Logger
}

func NewEventAuditConsumer(l *zap.Logger) *EventAuditConsumer {
	return &EventAuditConsumer{logger: l.With(zap.String("component", "EventAuditConsumer"))}
}

func (c *EventAuditConsumer) HandleMessage(ctx context.Context, message []byte) error {
	var event domain.Event
	if err := json.Unmarshal(message, &event); err != nil {
		c.logger.Error("Error unmarshalling catalog event", zap.Error(err), zap.String("raw_message", string(message)))
		return nil
	}

	c.logger.Info("Catalog event consumed",
		zap.String("event_id", event.EventID.String()),
		zap.String("event_type", event.Type),
		zap.Time("occurred_at", event.OccurredAt),
		zap.ByteString("payload", event.Payload))
	return nil
}

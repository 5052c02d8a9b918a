package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/catalog/domain"
)

// Publisher hands a domain event to its transport. Publish returns once the
// transport accepted the event, not once any consumer processed it. Delivery
// is at-most-once: callers log a failed publish and move on, they never roll
// back the mutation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// logPublisher is the sink variant used when no broker is configured. It
// serializes the event into the structured log and always succeeds.
type logPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(l *zap.Logger) Publisher {
	return &logPublisher{logger: l.With(zap.String("component", "LogEventPublisher"))}
}

func (p *logPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}
	p.logger.Info("Domain event published",
		zap.String("event_id", event.EventID.String()),
		zap.String("event_type", event.Type),
		zap.ByteString("event", payload))
	return nil
}

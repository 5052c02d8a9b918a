package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventProductCreated = "item.created"
	EventProductUpdated = "item.updated"
	EventProductDeleted = "item.deleted"
)

// Event is the envelope every catalog mutation is announced with. It is
// immutable once constructed and carries its tag in Type so consumers can
// route without decoding the payload.
type Event struct {
	EventID    uuid.UUID       `json:"event_id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// ProductPayload is carried by created and updated events.
type ProductPayload struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ProductDeletedPayload is carried by deleted events.
type ProductDeletedPayload struct {
	ProductID uuid.UUID `json:"product_id"`
}

func NewProductCreatedEvent(p *Product) (Event, error) {
	return newProductEvent(EventProductCreated, p)
}

func NewProductUpdatedEvent(p *Product) (Event, error) {
	return newProductEvent(EventProductUpdated, p)
}

func NewProductDeletedEvent(id uuid.UUID) (Event, error) {
	payload, err := json.Marshal(ProductDeletedPayload{ProductID: id})
	if err != nil {
		return Event{}, err
	}
	return newEvent(EventProductDeleted, payload), nil
}

func newProductEvent(eventType string, p *Product) (Event, error) {
	payload, err := json.Marshal(ProductPayload{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	})
	if err != nil {
		return Event{}, err
	}
	return newEvent(eventType, payload), nil
}

func newEvent(eventType string, payload json.RawMessage) Event {
	return Event{
		EventID:    uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

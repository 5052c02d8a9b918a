package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var ErrInvalidOrder = errors.New("invalid order data")

// OrderItem is a frozen copy of the product's identity, name and unit price
// at order time. Later catalog price changes never alter a stored order.
type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

type Order struct {
	ID           uuid.UUID
	CustomerName string
	Status       OrderStatus
	Total        decimal.Decimal
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewOrder(id uuid.UUID, customerName string, items []OrderItem) (*Order, error) {
	if id == uuid.Nil || customerName == "" || len(items) == 0 {
		return nil, ErrInvalidOrder
	}

	total := decimal.Zero
	for _, item := range items {
		if item.ProductID == uuid.Nil || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, ErrInvalidOrder
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now().UTC()
	return &Order{
		ID:           id,
		CustomerName: customerName,
		Status:       OrderStatusNew,
		Total:        total,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return errors.New("order is already cancelled")
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

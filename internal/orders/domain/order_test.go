package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems() []OrderItem {
	return []OrderItem{
		{ProductID: uuid.New(), ProductName: "Monitor", UnitPrice: decimal.RequireFromString("499.99"), Quantity: 2},
		{ProductID: uuid.New(), ProductName: "Mouse", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 1},
	}
}

func TestNewOrder_ComputesTotal(t *testing.T) {
	order, err := NewOrder(uuid.New(), "Ada", validItems())
	require.NoError(t, err)

	assert.Equal(t, OrderStatusNew, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("1019.97")))
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
}

func TestNewOrder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       uuid.UUID
		customer string
		items    []OrderItem
	}{
		{"nil id", uuid.Nil, "Ada", validItems()},
		{"empty customer", uuid.New(), "", validItems()},
		{"no items", uuid.New(), "Ada", nil},
		{"nil product id", uuid.New(), "Ada", []OrderItem{{Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}},
		{"zero quantity", uuid.New(), "Ada", []OrderItem{{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromInt(1)}}},
		{"negative price", uuid.New(), "Ada", []OrderItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.id, tt.customer, tt.items)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
}

func TestCancel(t *testing.T) {
	order, err := NewOrder(uuid.New(), "Ada", validItems())
	require.NoError(t, err)

	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status)
	assert.True(t, order.UpdatedAt.After(order.CreatedAt) || order.UpdatedAt.Equal(order.CreatedAt))

	assert.Error(t, order.Cancel(), "a cancelled order cannot be cancelled again")
}

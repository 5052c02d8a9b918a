package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Monitor", "27 inch", decimal.RequireFromString("499.99"), 10)
	require.NoError(t, err)

	assert.False(t, product.CreatedAt.IsZero())
	assert.Nil(t, product.UpdatedAt)

	// Zero price and zero stock are both legal.
	_, err = NewProduct(uuid.New(), "Freebie", "", decimal.Zero, 0)
	assert.NoError(t, err)
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name        string
		id          uuid.UUID
		productName string
		price       decimal.Decimal
		stock       int
	}{
		{"nil id", uuid.Nil, "Monitor", decimal.NewFromInt(1), 1},
		{"empty name", uuid.New(), "", decimal.NewFromInt(1), 1},
		{"negative price", uuid.New(), "Monitor", decimal.NewFromInt(-1), 1},
		{"negative stock", uuid.New(), "Monitor", decimal.NewFromInt(1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, tt.productName, "", tt.price, tt.stock)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestApply(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Monitor", "", decimal.RequireFromString("499.99"), 10)
	require.NoError(t, err)

	require.NoError(t, product.Apply("Monitor", "27 inch", decimal.RequireFromString("449.99"), 8))
	assert.Equal(t, 8, product.Stock)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("449.99")))
	require.NotNil(t, product.UpdatedAt)

	assert.ErrorIs(t, product.Apply("", "", decimal.Zero, 0), ErrInvalidProduct)
}

func TestProductEvents(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Monitor", "", decimal.RequireFromString("499.99"), 10)
	require.NoError(t, err)

	created, err := NewProductCreatedEvent(product)
	require.NoError(t, err)
	assert.Equal(t, EventProductCreated, created.Type)
	assert.NotEqual(t, uuid.Nil, created.EventID)
	assert.False(t, created.OccurredAt.IsZero())

	var payload ProductPayload
	require.NoError(t, json.Unmarshal(created.Payload, &payload))
	assert.Equal(t, product.ID, payload.ProductID)
	assert.True(t, payload.Price.Equal(product.Price))

	updated, err := NewProductUpdatedEvent(product)
	require.NoError(t, err)
	assert.Equal(t, EventProductUpdated, updated.Type)
	assert.NotEqual(t, created.EventID, updated.EventID, "every event carries a fresh identity")

	deleted, err := NewProductDeletedEvent(product.ID)
	require.NoError(t, err)
	assert.Equal(t, EventProductDeleted, deleted.Type)

	var deletedPayload ProductDeletedPayload
	require.NoError(t, json.Unmarshal(deleted.Payload, &deletedPayload))
	assert.Equal(t, product.ID, deletedPayload.ProductID)
}

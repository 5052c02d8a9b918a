package rpc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/catalog/app/catalog"
)

func TestMapResponseToDTO(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	updated := created.Add(2 * time.Hour)

	res := &catalog.ProductResponse{
		ID:          "6f1c6a2e-74a6-4a8d-b5cb-9a2d6f3f0a01",
		Name:        "Monitor",
		Description: "27 inch",
		Price:       decimal.RequireFromString("499.99"),
		Stock:       10,
		CreatedAt:   created,
		UpdatedAt:   &updated,
	}

	dto := mapResponseToDTO(res)

	assert.Equal(t, res.ID, dto.ID)
	assert.Equal(t, "499.99", dto.Price, "prices travel as decimal strings, never floats")
	assert.Equal(t, "2026-03-14T09:26:53Z", dto.CreatedAt)
	assert.Equal(t, "2026-03-14T11:26:53Z", dto.UpdatedAt)
}

func TestMapResponseToDTO_NoUpdateTimestamp(t *testing.T) {
	res := &catalog.ProductResponse{
		ID:        "6f1c6a2e-74a6-4a8d-b5cb-9a2d6f3f0a01",
		Name:      "Monitor",
		Price:     decimal.RequireFromString("499.99"),
		CreatedAt: time.Now().UTC(),
	}

	dto := mapResponseToDTO(res)
	assert.Empty(t, dto.UpdatedAt)
}

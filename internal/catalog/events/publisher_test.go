package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"storefront/internal/catalog/domain"
)

func TestLogPublisher_RecordsEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	product, err := domain.NewProduct(
		uuid.New(), "Monitor", "", decimal.RequireFromString("499.99"), 10)
	require.NoError(t, err)

	event, err := domain.NewProductCreatedEvent(product)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), event))

	entries := logs.FilterMessage("Domain event published").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, event.EventID.String(), fields["event_id"])
	assert.Equal(t, domain.EventProductCreated, fields["event_type"])
}

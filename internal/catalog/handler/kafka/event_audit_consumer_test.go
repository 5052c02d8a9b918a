package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"storefront/internal/catalog/domain"
)

func TestHandleMessage_LogsAndAcks(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	consumer := NewEventAuditConsumer(zap.New(core))

	event, err := domain.NewProductDeletedEvent(uuid.New())
	require.NoError(t, err)
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, consumer.HandleMessage(context.Background(), raw))

	entries := logs.FilterMessage("Catalog event consumed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EventProductDeleted, entries[0].ContextMap()["event_type"])
}

func TestHandleMessage_MalformedPayloadStillAcks(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	consumer := NewEventAuditConsumer(zap.New(core))

	err := consumer.HandleMessage(context.Background(), []byte("not json"))
	assert.NoError(t, err, "an undecodable message must be acknowledged, redelivery cannot fix it")
	assert.Len(t, logs.FilterMessage("Error unmarshalling catalog event").All(), 1)
}

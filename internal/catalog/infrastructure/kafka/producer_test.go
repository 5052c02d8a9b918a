package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewProducer_UnreachableBroker(t *testing.T) {
	// Nothing listens on port 1 locally; the constructor must report the
	// failure instead of handing out a writer that fails on first produce.
	producer, err := NewProducer([]string{"127.0.0.1:1"}, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, producer)
}

func TestNewProducer_NoBrokersConfigured(t *testing.T) {
	producer, err := NewProducer(nil, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, producer)
}

package eventbus

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/shared/domain"
)

type capturingPublisher struct {
	routingKey string
	payload    []byte
}

func (p *capturingPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.routingKey = routingKey
	p.payload = payload
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func TestPublishDomainEvent(t *testing.T) {
	pub := &capturingPublisher{}
	event := domain.NewBaseEvent("user-1", "Schedule", "scheduling.test")

	err := PublishDomainEvent(context.Background(), pub, event)

	require.NoError(t, err)
	assert.Equal(t, "scheduling.test", pub.routingKey)

	var decoded domain.BaseEvent
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, event.EventID(), decoded.EventID())
	assert.Equal(t, "user-1", decoded.SubjectID())
	assert.NotEqual(t, uuid.Nil, decoded.EventID())
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(nil)

	assert.NoError(t, pub.Publish(context.Background(), "any.key", []byte("{}")))
	assert.NoError(t, pub.Close())
}

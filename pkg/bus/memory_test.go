package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"volunteer-marketplace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversMatchingEvents(t *testing.T) {
	b := NewMemoryBus(watermill.NopLogger{})
	defer b.Close()

	received := make(chan events.Event, 4)
	require.NoError(t, b.Subscribe("events.FEATURE_APPROVED", "test", func(ctx context.Context, e events.Event) error {
		received <- e
		return nil
	}))
	require.NoError(t, b.Subscribe("events.>", "all", func(ctx context.Context, e events.Event) error {
		return errors.New("handler failures are logged, not fatal")
	}))

	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, b.Publish(context.Background(), events.BaseEvent{
		Type:       "POINTS_AWARDED",
		Data:       map[string]interface{}{"user_id": "u1"},
		OccurredAt: at,
	}))

	select {
	case e := <-received:
		t.Fatalf("unexpected event %s", e.EventType())
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, b.Publish(context.Background(), events.BaseEvent{
		Type:       "FEATURE_APPROVED",
		Data:       map[string]interface{}{"user_id": "u2"},
		OccurredAt: at,
	}))

	select {
	case e := <-received:
		assert.Equal(t, "FEATURE_APPROVED", e.EventType())
		assert.Equal(t, "u2", e.Payload()["user_id"])
		assert.True(t, at.Equal(e.Timestamp()))
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

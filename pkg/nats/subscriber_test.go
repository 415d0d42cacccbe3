package nats

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

func TestDecodeEventPrefersHeaders(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	headers := nats.Header{}
	headers.Set(headerEventType, "FEATURE_APPROVED")
	headers.Set(headerOccurredAt, at.Format(time.RFC3339Nano))

	event := decodeEvent("events.FEATURE_APPROVED", headers, map[string]interface{}{"user_id": "u1"})

	assert.Equal(t, "FEATURE_APPROVED", event.EventType())
	assert.True(t, at.Equal(event.Timestamp()))
	assert.Equal(t, "u1", event.Payload()["user_id"])
}

func TestDecodeEventFallsBackToSubject(t *testing.T) {
	event := decodeEvent("events.POINTS_AWARDED", nats.Header{}, nil)
	assert.Equal(t, "POINTS_AWARDED", event.EventType())
	assert.False(t, event.Timestamp().IsZero())
}

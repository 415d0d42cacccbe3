// Package bus provides an in-process event bus used when NATS is not
// reachable. It satisfies the same Publisher/Subscriber contract.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"volunteer-marketplace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	topic = "events"

	metaEventType  = "event_type"
	metaOccurredAt = "occurred_at"
)

type MemoryBus struct {
	pubSub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

func NewMemoryBus(logger watermill.LoggerAdapter) *MemoryBus {
	return &MemoryBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger),
		logger: logger,
	}
}

func (b *MemoryBus) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(metaEventType, event.EventType())
	msg.Metadata.Set(metaOccurredAt, event.Timestamp().UTC().Format(time.RFC3339Nano))
	msg.SetContext(ctx)
	return b.pubSub.Publish(topic, msg)
}

// Subscribe delivers every event whose subject matches the pattern. The
// durable name is accepted for contract parity; in-process subscriptions
// do not survive a restart.
func (b *MemoryBus) Subscribe(subject string, durableName string, handler events.Handler) error {
	messages, err := b.pubSub.Subscribe(context.Background(), topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.process(subject, durableName, handler, msg)
		}
	}()
	return nil
}

func (b *MemoryBus) process(subject, durableName string, handler events.Handler, msg *message.Message) {
	eventType := msg.Metadata.Get(metaEventType)
	if !events.MatchSubject(subject, events.Subject(eventType)) {
		msg.Ack()
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		b.logger.Error("dropping undecodable event", err, watermill.LogFields{"event_type": eventType})
		msg.Ack()
		return
	}
	occurredAt, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(metaOccurredAt))
	if err != nil {
		occurredAt = time.Now()
	}

	event := events.BaseEvent{Type: eventType, Data: payload, OccurredAt: occurredAt}
	if err := handler(context.Background(), event); err != nil {
		// no redelivery in-process; a failing handler would spin on Nack
		b.logger.Error("event handler failed", err, watermill.LogFields{
			"event_type": eventType,
			"durable":    durableName,
		})
	}
	msg.Ack()
}

func (b *MemoryBus) Close() error {
	return b.pubSub.Close()
}

package service

import (
	"context"
	"time"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/pkg/events"
)

// Notice is one notification request. Either UserPublicID or TargetRole
// names the recipients.
type Notice struct {
	Type           string
	UserPublicID   string
	TargetRole     entity.UserRole
	Title          string
	Message        string
	EntityType     string
	EntityPublicID string
	Data           map[string]interface{}
}

// Notifier is fire-and-forget: failures are logged by the implementation
// and never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// EventNotifier publishes notices on the event bus for NotificationService
// to persist.
type EventNotifier struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func NewEventNotifier(publisher events.Publisher, log logger.ILogger) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		logger:    log,
	}
}

func (n *EventNotifier) Notify(ctx context.Context, notice Notice) {
	if n == nil || n.publisher == nil {
		return
	}

	payload := make(map[string]interface{}, len(notice.Data)+6)
	for k, v := range notice.Data {
		payload[k] = v
	}
	payload["title"] = notice.Title
	payload["message"] = notice.Message
	if notice.UserPublicID != "" {
		payload["user_id"] = notice.UserPublicID
	}
	if notice.TargetRole != "" {
		payload["target_role"] = string(notice.TargetRole)
	}
	if notice.EntityType != "" {
		payload["entity_type"] = notice.EntityType
		payload["entity_id"] = notice.EntityPublicID
	}

	evt := events.BaseEvent{
		Type:       notice.Type,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := n.publisher.Publish(ctx, evt); err != nil {
		n.logger.Error("NOTIFIER", "Failed to publish notification event", map[string]interface{}{
			"type":      notice.Type,
			"user_id":   notice.UserPublicID,
			"entity_id": notice.EntityPublicID,
			"error":     err,
		})
	}
}

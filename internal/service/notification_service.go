package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/model"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const notificationConsumer = "notif-service-worker"

// reserved payload keys that describe routing rather than content
var routingKeys = map[string]bool{
	"user_id":     true,
	"target_role": true,
	"title":       true,
	"message":     true,
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber events.Subscriber
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub events.Subscriber, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() error {
	if err := s.subscriber.Subscribe(events.SubjectPrefix+">", notificationConsumer, s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
	return nil
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), events.SubjectPrefix)
	payload := event.Payload()
	if payload == nil {
		payload = map[string]interface{}{}
	}

	config, err := s.repo.GetNotificationTypeByCode(ctx, typeCode)
	if err != nil {
		return fmt.Errorf("failed to load notification type %s: %w", typeCode, err)
	}
	if config != nil && !config.IsActive {
		s.logger.Debug("NotificationService", fmt.Sprintf("Notification type '%s' is inactive", typeCode), nil)
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, payload)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err})
		return err
	}
	if len(recipients) == 0 {
		s.logger.Warn("NotificationService", fmt.Sprintf("No recipients for event %s", typeCode), nil)
		return nil
	}

	rows := make([]model.Notification, 0, len(recipients))
	for _, userPublicID := range recipients {
		rows = append(rows, s.buildNotification(userPublicID, typeCode, config, payload))
	}
	if err := s.repo.CreateNotifications(ctx, rows); err != nil {
		return fmt.Errorf("failed to save notifications for %s: %w", typeCode, err)
	}

	s.logger.Info("NotificationService", "Notifications stored", map[string]interface{}{"type": typeCode, "count": len(rows)})
	return nil
}

// resolveRecipients prefers an explicit user on the event, then a role on
// the event, then the role configured on the type.
func (s *NotificationService) resolveRecipients(ctx context.Context, config *model.NotificationType, payload map[string]interface{}) ([]string, error) {
	if userID, ok := payload["user_id"].(string); ok && userID != "" {
		return []string{userID}, nil
	}

	role, _ := payload["target_role"].(string)
	if role == "" && config != nil && config.TargetType == "ROLE" {
		role = config.TargetRole
	}
	if role == "" {
		return nil, nil
	}
	return s.repo.GetUserPublicIDsByRole(ctx, role)
}

func (s *NotificationService) buildNotification(userPublicID, typeCode string, config *model.NotificationType, payload map[string]interface{}) model.Notification {
	title, _ := payload["title"].(string)
	message, _ := payload["message"].(string)
	if config != nil {
		if config.DisplayName != "" {
			title = config.DisplayName
		}
		if config.Template != "" {
			message = fillTemplate(config.Template, payload)
		}
	}
	if title == "" {
		title = typeCode
	}

	entityType, _ := payload["entity_type"].(string)
	entityID, _ := payload["entity_id"].(string)

	meta := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		if !routingKeys[k] {
			meta[k] = v
		}
	}
	if entityType != "" && entityID != "" {
		meta["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID)
	}
	metaJSON, _ := json.Marshal(meta)

	return model.Notification{
		ID:             uuid.New(),
		UserPublicID:   userPublicID,
		TypeCode:       typeCode,
		EntityType:     entityType,
		EntityPublicID: entityID,
		Title:          title,
		Message:        message,
		Metadata:       datatypes.JSON(metaJSON),
	}
}

func fillTemplate(template string, payload map[string]interface{}) string {
	msg := template
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%s}", k), fmt.Sprintf("%v", v))
	}
	return msg
}

// GetNotifications fetches a page of notifications for a user, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, userPublicID string, page, limit int) ([]model.Notification, int64, error) {
	p := specification.Page(page, limit)
	return s.repo.GetNotificationsByUser(ctx, userPublicID, p.Limit, p.Offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userPublicID string) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userPublicID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userPublicID string, id uuid.UUID) error {
	err := s.repo.MarkAsRead(ctx, userPublicID, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return apperror.NotFound("notification")
	}
	return err
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userPublicID string) error {
	return s.repo.MarkAllAsRead(ctx, userPublicID)
}

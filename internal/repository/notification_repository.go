package repository

import (
	"context"
	"errors"

	"volunteer-marketplace-be/internal/model"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	// Notification Operations
	CreateNotifications(ctx context.Context, notifications []model.Notification) error
	GetNotificationsByUser(ctx context.Context, userPublicID string, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userPublicID string) (int64, error)
	MarkAsRead(ctx context.Context, userPublicID string, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userPublicID string) error

	// Registry Operations
	GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	GetUserPublicIDsByRole(ctx context.Context, role string) ([]string, error)
}

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/implementation"
	"volunteer-marketplace-be/pkg/bus"
	"volunteer-marketplace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(t *testing.T, f *fixture, sub events.Subscriber) *NotificationService {
	t.Helper()
	return NewNotificationService(implementation.NewNotificationRepository(f.db), sub, logger.NewNopLogger())
}

func TestNotificationService_StoresForExplicitUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newNotificationService(t, f, nil)
	volunteer := f.user(t, entity.RoleVolunteer)

	require.NoError(t, svc.handleEvent(ctx, events.BaseEvent{
		Type: constant.NotifPointsAwarded,
		Data: map[string]interface{}{
			"user_id":     volunteer.PublicId,
			"title":       "Points awarded",
			"message":     "You earned 100 points.",
			"entity_type": constant.EntityBooking,
			"entity_id":   "01HZXBOOKING",
			"points":      100,
		},
	}))

	items, total, err := svc.GetNotifications(ctx, volunteer.PublicId, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Points awarded", items[0].Title)
	assert.Equal(t, "You earned 100 points.", items[0].Message)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(items[0].Metadata, &meta))
	assert.Equal(t, "/bookings/01HZXBOOKING", meta["action_url"])
	assert.NotContains(t, meta, "user_id")

	unread, err := svc.GetUnreadCount(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAsRead(ctx, volunteer.PublicId, items[0].ID))
	unread, err = svc.GetUnreadCount(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Zero(t, unread)

	err = svc.MarkAsRead(ctx, volunteer.PublicId, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestNotificationService_FansOutToRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newNotificationService(t, f, nil)
	second := f.user(t, entity.RoleAdmin)

	require.NoError(t, svc.handleEvent(ctx, events.BaseEvent{
		Type: constant.NotifFeatureRequested,
		Data: map[string]interface{}{"target_role": "admin", "title": "New request", "message": "Review it."},
	}))

	for _, admin := range []string{f.admin.PublicId, second.PublicId} {
		_, total, err := svc.GetNotifications(ctx, admin, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	}
}

func TestNotificationService_RegistryOverridesAndInactiveTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newNotificationService(t, f, nil)
	volunteer := f.user(t, entity.RoleVolunteer)

	require.NoError(t, f.db.Create(&model.NotificationType{
		Code:        constant.NotifBookingApproved,
		DisplayName: "Booking approved",
		Template:    "Your booking {entity_id} was approved.",
		TargetType:  "SELF",
	}).Error)
	muted := &model.NotificationType{
		Code:        constant.NotifBookingRejected,
		DisplayName: "Booking rejected",
		Template:    "Rejected.",
		TargetType:  "SELF",
	}
	require.NoError(t, f.db.Create(muted).Error)
	require.NoError(t, f.db.Model(muted).Update("is_active", false).Error)

	payload := map[string]interface{}{"user_id": volunteer.PublicId, "entity_type": "booking", "entity_id": "B1"}
	require.NoError(t, svc.handleEvent(ctx, events.BaseEvent{Type: constant.NotifBookingApproved, Data: payload}))
	require.NoError(t, svc.handleEvent(ctx, events.BaseEvent{Type: constant.NotifBookingRejected, Data: payload}))

	items, total, err := svc.GetNotifications(ctx, volunteer.PublicId, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Booking approved", items[0].Title)
	assert.Equal(t, "Your booking B1 was approved.", items[0].Message)
}

func TestNotificationService_EndToEndThroughBus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := bus.NewMemoryBus(watermill.NopLogger{})
	defer b.Close()

	svc := newNotificationService(t, f, b)
	require.NoError(t, svc.Start())

	volunteer := f.user(t, entity.RoleVolunteer)
	notifier := NewEventNotifier(b, logger.NewNopLogger())
	notifier.Notify(ctx, Notice{
		Type:         constant.NotifPointsAwarded,
		UserPublicID: volunteer.PublicId,
		Title:        "Points awarded",
		Message:      "You earned 20 points.",
	})

	assert.Eventually(t, func() bool {
		n, err := svc.GetUnreadCount(ctx, volunteer.PublicId)
		return err == nil && n == 1
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, svc.MarkAllAsRead(ctx, volunteer.PublicId))
	n, err := svc.GetUnreadCount(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Zero(t, n)
}

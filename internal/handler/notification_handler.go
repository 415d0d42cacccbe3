package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
)

type NotificationHandler struct {
	service  *service.NotificationService
	notifier service.Notifier
	logger   logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, notifier service.Notifier, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		notifier: notifier,
		logger:   log,
	}
}

type broadcastRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Message    string `json:"message" validate:"required"`
	TargetRole string `json:"target_role" validate:"required,oneof=volunteer organization admin"`
}

// GetNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	actor := serverutils.Actor(c)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	notifications, total, err := h.service.GetNotifications(c.UserContext(), actor.PublicId, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Success fetching notifications", serverutils.PagedData[model.Notification]{
		Items: notifications,
		Meta:  serverutils.PageMeta{Page: page, Limit: limit, Total: total},
	}))
}

// GetUnreadCount returns the number of unread notifications.
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.GetUnreadCount(c.UserContext(), serverutils.Actor(c).PublicId)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success fetching unread count", fiber.Map{"count": count}))
}

// MarkAsRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.Field("id", "must be a uuid")
	}

	if err := h.service.MarkAsRead(c.UserContext(), serverutils.Actor(c).PublicId, id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("Notification marked as read", nil))
}

// MarkAllAsRead marks all of the caller's notifications as read.
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllAsRead(c.UserContext(), serverutils.Actor(c).PublicId); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("All notifications marked as read", nil))
}

// Broadcast sends an admin notice to every user holding a role.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	actor := serverutils.Actor(c)
	if !actor.IsAdmin() {
		return fiber.ErrForbidden
	}

	var req broadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	h.notifier.Notify(c.UserContext(), service.Notice{
		Type:       constant.NotifSystemBroadcast,
		TargetRole: entity.UserRole(req.TargetRole),
		Title:      req.Title,
		Message:    req.Message,
	})
	h.logger.Info("NotificationHandler", "Broadcast queued", map[string]interface{}{
		"admin_id":    actor.PublicId,
		"target_role": req.TargetRole,
	})

	return c.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Broadcast queued", nil))
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	notif := router.Group("/notifications", auth)
	notif.Get("/", h.GetNotifications)
	notif.Get("/unread-count", h.GetUnreadCount)
	notif.Patch("/read-all", h.MarkAllAsRead)
	notif.Patch("/:id/read", h.MarkAsRead)
	notif.Post("/broadcast", h.Broadcast)
}

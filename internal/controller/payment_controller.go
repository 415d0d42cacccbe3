package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/pkg/serverutils"
	"volunteer-marketplace-be/internal/service"
	"volunteer-marketplace-be/pkg/payment"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentWebhookService
	logger  logger.ILogger
}

func NewPaymentController(service service.IPaymentWebhookService, log logger.ILogger) IPaymentController {
	return &paymentController{service: service, logger: log}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	h.Post("/midtrans/notification", c.Webhook)
}

// Webhook answers 200 for every notification that needs no redelivery.
// A non-2xx status makes the gateway retry.
func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req payment.Notification
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid notification body"))
	}

	if err := c.service.Handle(ctx.UserContext(), req); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid signature"))
		}
		c.logger.Error("PAYMENT", "Notification handling failed", map[string]interface{}{
			"order_id": req.OrderID,
			"status":   req.TransactionStatus,
			"error":    err,
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "Failed to process notification"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/pkg/logger"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:             fiber.StatusBadRequest,
	apperror.KindInvalidAmount:          fiber.StatusBadRequest,
	apperror.KindInsufficientPoints:     fiber.StatusUnprocessableEntity,
	apperror.KindNotFound:               fiber.StatusNotFound,
	apperror.KindConcurrentModification: fiber.StatusConflict,
	apperror.KindAlreadyProcessed:       fiber.StatusConflict,
	apperror.KindDuplicateReferral:      fiber.StatusConflict,
	apperror.KindGateway:                fiber.StatusBadGateway,
}

// StatusFor maps an error to the HTTP status the API reports for it.
func StatusFor(err error) int {
	if appErr, ok := apperror.As(err); ok {
		if status, ok := kindStatus[appErr.Kind]; ok {
			return status
		}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware turns errors returned by handlers into the
// standard response envelope. Internal errors are logged and masked.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err)
		resp := ErrorResponse(status, err.Error())
		if appErr, ok := apperror.As(err); ok {
			resp.Message = appErr.Message
			resp.Errors = appErr.Fields
			resp.Data = fiber.Map{"kind": appErr.Kind}
		}
		if status == fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err,
			})
			resp.Message = "internal server error"
		}
		return ctx.Status(status).JSON(resp)
	}
}

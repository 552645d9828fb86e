package handlers

import (
	"errors"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/schema"
	"prompt-insights/internal/service"
	"prompt-insights/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service and component errors onto HTTP statuses.
// Server-side failures are logged and reported with the generic message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, generic string) error {
	status := fiber.StatusInternalServerError
	message := generic

	switch {
	case errors.Is(err, session.ErrNotFound):
		status, message = fiber.StatusNotFound, "Session not found"
	case errors.Is(err, service.ErrNoPendingConfirmation):
		status, message = fiber.StatusBadRequest, "No pending confirmation"
	case errors.Is(err, service.ErrNoPendingFix):
		status, message = fiber.StatusBadRequest, "No pending fix"
	case errors.Is(err, schema.ErrCacheMissing):
		status, message = fiber.StatusNotFound, "Schema cache not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Invalid credentials"
	default:
		switch apperr.KindOf(err) {
		case apperr.InvalidInput:
			status, message = fiber.StatusBadRequest, apperr.Message(err)
		case apperr.NotFound:
			status, message = fiber.StatusNotFound, apperr.Message(err)
		case apperr.Conflict:
			status, message = fiber.StatusConflict, apperr.Message(err)
		case apperr.SchemaUnavailable:
			status, message = fiber.StatusServiceUnavailable, apperr.Message(err)
		case apperr.ModelCallFailed:
			status, message = fiber.StatusBadGateway, apperr.Message(err)
		}
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error(generic, zap.Error(err), zap.String("path", c.Path()))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

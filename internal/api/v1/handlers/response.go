package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todolist/internal/apperrors"
	"todolist/pkg/logger"
)

func respond(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"message": message,
		"success": true,
		"status":  status,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// fail maps err onto the public error taxonomy. Server-side failures are
// logged in full; the client only ever sees the mapped message.
func fail(c *fiber.Ctx, err error, logMessage string) error {
	httpErr := apperrors.MapToHTTP(err)
	switch {
	case httpErr.StatusCode >= fiber.StatusInternalServerError:
		logger.ErrorLogger.Error(logMessage, zap.Error(err))
	case httpErr.StatusCode == fiber.StatusForbidden || httpErr.StatusCode == fiber.StatusUnauthorized:
		logger.SecurityLogger.Warn(logMessage, zap.Error(err))
	default:
		logger.AuditLogger.Info(logMessage, zap.Error(err))
	}
	return c.Status(httpErr.StatusCode).JSON(fiber.Map{
		"message": httpErr.Message,
		"success": false,
		"status":  httpErr.StatusCode,
	})
}

func badRequest(c *fiber.Ctx, err error, logMessage string) error {
	logger.AuditLogger.Info(logMessage, zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Bad request",
		"success": false,
		"status":  fiber.StatusBadRequest,
	})
}

// validationFailed reports one message per offending field, keyed by the
// field's JSON name.
func validationFailed(c *fiber.Ctx, err error, logMessage string) error {
	logger.AuditLogger.Warn(logMessage, zap.Error(err))
	httpErr := apperrors.MapToHTTP(fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
	}
	return c.Status(httpErr.StatusCode).JSON(fiber.Map{
		"message": httpErr.Message,
		"errors":  fields,
		"success": false,
		"status":  httpErr.StatusCode,
	})
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

package serverutils

import (
	"errors"

	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/agent/access"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so handlers
// can just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, validationErr.Message))
		}

		var limitErr *access.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(429, limitErr.Error()))
		}

		if agent.IsAccessDenied(err) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
	}
}

package serverutils

import (
	"errors"

	"weaponforge-be/internal/pkg/apperror"
	"weaponforge-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts handler errors into {"error": "..."} bodies.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, message := resolve(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}

func resolve(err error) (int, string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.StatusCode(), appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, err.Error()
}

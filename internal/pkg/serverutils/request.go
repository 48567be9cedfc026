package serverutils

import (
	"weaponforge-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseBody decodes a JSON body into req. Malformed input is a validation
// error, never a 500.
func ParseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("invalid request body")
	}
	return nil
}

// UUIDParam reads a path parameter that must be a UUID.
func UUIDParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid " + name)
	}
	return id, nil
}

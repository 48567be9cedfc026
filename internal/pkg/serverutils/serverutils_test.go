package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"weaponforge-be/internal/pkg/apperror"
	"weaponforge-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Prompt  string  `json:"prompt" validate:"required"`
	Quality *string `json:"quality" validate:"omitempty,oneof=low medium high"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(sampleRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "prompt is required", err.Error())

	bad := "ultra"
	err = ValidateRequest(sampleRequest{Prompt: "x", Quality: &bad})
	require.Error(t, err)
	assert.Equal(t, "quality is invalid", err.Error())

	assert.NoError(t, ValidateRequest(sampleRequest{Prompt: "x"}))
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNop()))
	app.Get("/validation", func(*fiber.Ctx) error { return apperror.Validation("prompt is required") })
	app.Get("/missing", func(*fiber.Ctx) error { return apperror.NotFound("weapon not found") })
	app.Get("/store", func(*fiber.Ctx) error { return apperror.Store(errors.New("connection reset")) })
	app.Get("/upstream", func(*fiber.Ctx) error { return apperror.Upstream(errors.New("dial tcp: refused")) })
	app.Get("/fiber", func(*fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge })
	app.Get("/plain", func(*fiber.Ctx) error { return errors.New("boom") })
	app.Get("/uuid/:id", func(ctx *fiber.Ctx) error {
		_, err := UUIDParam(ctx, "id")
		return err
	})

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/validation", http.StatusBadRequest, "prompt is required"},
		{"/missing", http.StatusNotFound, "weapon not found"},
		{"/store", http.StatusInternalServerError, "Database error: connection reset"},
		{"/upstream", http.StatusBadGateway, "Upstream error: dial tcp: refused"},
		{"/fiber", http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{"/plain", http.StatusInternalServerError, "boom"},
		{"/uuid/nope", http.StatusBadRequest, "invalid id"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"validation", Validation("prompt is required"), KindValidation, http.StatusBadRequest},
		{"not found", NotFound("weapon not found"), KindNotFound, http.StatusNotFound},
		{"store", Store(cause), KindStore, http.StatusInternalServerError},
		{"upstream", Upstream(cause), KindUpstream, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("service: %w", NotFound("share not found")), KindNotFound, http.StatusNotFound},
		{"plain", cause, KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, KindOf(tt.err).StatusCode())
		})
	}
}

func TestWrappedCauseIsReachable(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")

	err := Upstream(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Upstream error: dial tcp: i/o timeout", err.Error())

	storeErr := Store(cause)
	assert.Equal(t, "Database error: dial tcp: i/o timeout", storeErr.Error())
	assert.True(t, IsNotFound(NotFound("weapon not found")))
	assert.False(t, IsNotFound(storeErr))
}

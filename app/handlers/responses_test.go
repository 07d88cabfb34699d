package handlers

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/amalbenali/glowshop/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/unrolled/render"
)

func TestRenderServiceError(t *testing.T) {
	rnd := render.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", services.NewValidationError().Add("city", "required"), 400},
		{"invalid reference", fmt.Errorf("%w: product x", services.ErrInvalidReference), 400},
		{"invalid status", services.ErrInvalidStatus, 400},
		{"not found", services.ErrNotFound, 404},
		{"conflict", services.ErrStatusConflict, 409},
		{"wrapped persistence", &services.PersistenceError{Op: "create order", Err: errors.New("boom")}, 500},
		{"unknown", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			renderServiceError(rnd, w, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestRenderServiceError_ValidationFields(t *testing.T) {
	rnd := render.New()
	w := httptest.NewRecorder()

	verr := services.NewValidationError().Add("city", "required").Add("phone", "required")
	renderServiceError(rnd, w, verr)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), `"city":"required"`)
	assert.Contains(t, w.Body.String(), `"phone":"required"`)
}

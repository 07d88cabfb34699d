package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/amalbenali/glowshop/app/services"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// renderServiceError maps the service error taxonomy onto HTTP status codes.
func renderServiceError(rnd *render.Render, w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidReference):
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidStatus):
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotFound):
		_ = rnd.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrStatusConflict):
		_ = rnd.JSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		_ = rnd.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func renderBadRequest(rnd *render.Render, w http.ResponseWriter, message string) {
	_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/unrolled/render"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Only genuinely unexpected faults fall through to a logged 500; expected
// failures always reach the client with their reason.
func writeServiceError(rnd *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		rnd.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		rnd.JSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		rnd.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		rnd.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		rnd.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

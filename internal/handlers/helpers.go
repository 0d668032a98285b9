package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/benvon/food-delivery/internal/apperror"
	"github.com/benvon/food-delivery/internal/request"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// respondJSON sends a success envelope. Encoding happens before anything is written so
// a marshal failure can still be reported as an error response.
func respondJSON(w http.ResponseWriter, status int, data any) error {
	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// decodeBody decodes the body parsed by the body stage into v
func decodeBody(r *http.Request, v any) error {
	body := request.BodyFromContext(r)
	if body == nil {
		return apperror.BadRequest("Request body is required")
	}
	if err := body.Decode(v); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// pathID parses the named route variable as a UUID
func pathID(r *http.Request, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperror.Wrap(err, http.StatusBadRequest, "Invalid "+what+" id")
	}
	return id, nil
}

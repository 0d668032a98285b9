package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HomeMessage is the liveness greeting served at GET /
const HomeMessage = "Hello developers from GFG"

type homeResponse struct {
	Message string `json:"message"`
}

// Home answers the liveness probe with a fixed greeting
func Home(w http.ResponseWriter, r *http.Request) error {
	body, err := json.Marshal(homeResponse{Message: HomeMessage})
	if err != nil {
		return fmt.Errorf("failed to encode greeting: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return nil
}

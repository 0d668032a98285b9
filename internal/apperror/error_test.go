package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestEnvelopeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "status and message",
			err:         NotFound("Not Found"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not Found",
		},
		{
			name:        "plain error has no status",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: DefaultMessage,
		},
		{
			name:        "message without status",
			err:         &Error{Message: "boom"},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "boom",
		},
		{
			name:        "status without message",
			err:         &Error{Status: http.StatusBadGateway},
			wantStatus:  http.StatusBadGateway,
			wantMessage: DefaultMessage,
		},
		{
			name:        "wrapped with fmt.Errorf",
			err:         fmt.Errorf("load user: %w", Conflict("Email is already in use")),
			wantStatus:  http.StatusConflict,
			wantMessage: "Email is already in use",
		},
		{
			name:        "non-error status ignored",
			err:         New(http.StatusOK, "fine"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := EnvelopeOf(tt.err)
			if env.Success {
				t.Error("Expected success to be false")
			}
			if env.Status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, env.Status)
			}
			if env.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, env.Message)
			}
		})
	}
}

func TestEnvelope_JSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(EnvelopeOf(NotFound("Not Found")))
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}

	want := `{"success":false,"status":404,"message":"Not Found"}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestWrap_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("http: request body too large")
	err := PayloadTooLarge(cause)

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to match its cause")
	}
	if err.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", err.Status)
	}
	if got := err.Error(); got != "request entity too large: http: request body too large" {
		t.Errorf("Unexpected error string %q", got)
	}
}

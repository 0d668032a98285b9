package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// DefaultStatus is used when an error carries no status code
	DefaultStatus = http.StatusInternalServerError
	// DefaultMessage is used when an error carries no client-safe message
	DefaultMessage = "Something went wrong"
)

// Error is an error that knows how it should be rendered to the client.
// Status and Message are both optional; the zero value renders as 500 with DefaultMessage.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Message != "":
		return e.Message
	default:
		return DefaultMessage
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Envelope is the JSON body written for every failed request
type Envelope struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// New creates an error with the given status and client message
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap attaches a status and client message to an underlying error.
// The underlying error is kept for logging and errors.Is/As but never shown to clients.
func Wrap(err error, status int, message string) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

// BadRequest returns a 400 error
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Forbidden returns a 403 error
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound returns a 404 error
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict returns a 409 error
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// PayloadTooLarge returns a 413 error
func PayloadTooLarge(err error) *Error {
	return Wrap(err, http.StatusRequestEntityTooLarge, "request entity too large")
}

// StatusOf extracts the HTTP status for err, falling back to DefaultStatus.
// Statuses outside the 4xx/5xx range are not trusted and also fall back.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status >= 400 && appErr.Status <= 599 {
		return appErr.Status
	}
	return DefaultStatus
}

// MessageOf extracts the client-facing message for err.
// Only *Error messages are exposed; everything else is reported as DefaultMessage.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return DefaultMessage
}

// EnvelopeOf builds the response envelope for err
func EnvelopeOf(err error) Envelope {
	return Envelope{
		Success: false,
		Status:  StatusOf(err),
		Message: MessageOf(err),
	}
}

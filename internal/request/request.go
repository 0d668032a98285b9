package request

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	bodyContextKey      contextKey = "body"
	errorSlotContextKey contextKey = "error_slot"
)

// ClientIP extracts the client IP from the request, respecting X-Forwarded-For and X-Real-IP.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}

// WithBody returns a context carrying the decoded request body.
func WithBody(ctx context.Context, body *Body) context.Context {
	return context.WithValue(ctx, bodyContextKey, body)
}

// BodyFromContext returns the decoded body, or nil if the body stage did not run or saw no body.
func BodyFromContext(r *http.Request) *Body {
	b, _ := r.Context().Value(bodyContextKey).(*Body)
	return b
}

// ErrorSlot holds the error returned by a routed handler so the dispatcher can pass it
// back up the pipeline after the router returns.
type ErrorSlot struct {
	err error
}

// Err returns the stored error.
func (s *ErrorSlot) Err() error {
	return s.err
}

// WithErrorSlot returns a context carrying slot.
func WithErrorSlot(ctx context.Context, slot *ErrorSlot) context.Context {
	return context.WithValue(ctx, errorSlotContextKey, slot)
}

// Forward stores err in the request's error slot. It reports false when the request was
// not dispatched through a slot-aware router. The first error forwarded wins.
func Forward(r *http.Request, err error) bool {
	slot, _ := r.Context().Value(errorSlotContextKey).(*ErrorSlot)
	if slot == nil {
		return false
	}
	if slot.err == nil {
		slot.err = err
	}
	return true
}

package middleware

import "net/http"

// HandlerFunc is an HTTP handler that reports failure by returning an error instead of
// writing its own error response. A non-nil error ends the pipeline and is rendered by
// ErrorBoundary.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Stage wraps a HandlerFunc with one pipeline step.
type Stage func(next HandlerFunc) HandlerFunc

// Chain composes stages around h. The first stage runs first.
func Chain(h HandlerFunc, stages ...Stage) HandlerFunc {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

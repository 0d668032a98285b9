package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/benvon/food-delivery/internal/apperror"
	logpkg "github.com/benvon/food-delivery/internal/logger"
	"go.uber.org/zap"
)

// ErrorBoundary runs h and renders any error it returns, or any panic it raises, as an
// apperror.Envelope. It is the only place failed requests are formatted.
func ErrorBoundary(logger *zap.Logger, h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}

		err := runRecovering(h, tw, r)
		if err == nil {
			return
		}

		env := apperror.EnvelopeOf(err)
		fields := []zap.Field{
			zap.Int("status_code", env.Status),
			zap.String("message", env.Message),
			zap.String("method", r.Method),
			zap.String("path", logpkg.SanitizePath(r.URL.Path)),
			zap.String("error", logpkg.SanitizeError(err)),
		}

		if tw.wroteHeader {
			logger.Error("error_after_response_started", fields...)
			return
		}

		if env.Status >= http.StatusInternalServerError {
			logger.Error("request_error", fields...)
		} else {
			logger.Warn("request_error", fields...)
		}

		respondErrorJSON(w, r, env, logger)
	})
}

func runRecovering(h HandlerFunc, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		if recErr, ok := rec.(error); ok {
			err = fmt.Errorf("panic: %w", recErr)
			return
		}
		err = fmt.Errorf("panic: %v", rec)
	}()
	return h(w, r)
}

// respondErrorJSON sends an error JSON response
func respondErrorJSON(w http.ResponseWriter, r *http.Request, env apperror.Envelope, logger *zap.Logger) {
	data, err := json.Marshal(env)
	if err != nil {
		logger.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.Int("status_code", env.Status),
			zap.String("path", logpkg.SanitizePath(r.URL.Path)),
		)
		http.Error(w, apperror.DefaultMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Del("Content-Length")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)
	if _, err := w.Write(data); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		logger.Debug("failed_to_write_error_response", zap.Error(err))
	}
}

// trackingWriter records whether the response has been started
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.wroteHeader = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	tw.wroteHeader = true
	return tw.ResponseWriter.Write(b)
}

func (tw *trackingWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/benvon/food-delivery/internal/apperror"
	"github.com/benvon/food-delivery/internal/request"
)

const (
	// DefaultMaxJSONBodySize is the largest accepted JSON body (50MB)
	DefaultMaxJSONBodySize int64 = 50 << 20
	// DefaultMaxFormBodySize is the largest accepted URL-encoded body (100KB)
	DefaultMaxFormBodySize int64 = 100 << 10
)

// BodyLimits caps request bodies per encoding
type BodyLimits struct {
	JSON int64
	Form int64
}

// DecodeBody creates the body-decoding stage.
//
// JSON and URL-encoded bodies are read in full, checked against their size limit and
// attached to the request context as a *request.Body. The raw bytes are put back on
// r.Body so handlers may still stream them. Other content types pass through.
func DecodeBody(limits BodyLimits) Stage {
	if limits.JSON <= 0 {
		limits.JSON = DefaultMaxJSONBodySize
	}
	if limits.Form <= 0 {
		limits.Form = DefaultMaxFormBodySize
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			if r.Body == nil || r.Body == http.NoBody {
				return next(w, r)
			}

			kind, charset := bodyKind(r.Header.Get("Content-Type"))
			if kind == "" {
				return next(w, r)
			}
			if charset != "" && !strings.EqualFold(charset, "utf-8") {
				return apperror.New(http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported charset %q", strings.ToUpper(charset)))
			}

			limit := limits.JSON
			if kind == request.BodyForm {
				limit = limits.Form
			}

			// Check Content-Length header early if present
			if r.ContentLength > limit {
				return apperror.PayloadTooLarge(fmt.Errorf("content length %d exceeds limit %d", r.ContentLength, limit))
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					return apperror.PayloadTooLarge(err)
				}
				return apperror.Wrap(err, http.StatusBadRequest, "failed to read request body")
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			trimmed := bytes.TrimSpace(raw)
			if len(trimmed) == 0 {
				return next(w, r)
			}

			body, err := decode(kind, trimmed)
			if err != nil {
				return err
			}
			return next(w, r.WithContext(request.WithBody(r.Context(), body)))
		}
	}
}

func bodyKind(contentType string) (request.BodyKind, string) {
	if contentType == "" {
		return "", ""
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ""
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return request.BodyJSON, params["charset"]
	case mediaType == "application/x-www-form-urlencoded":
		return request.BodyForm, params["charset"]
	default:
		return "", ""
	}
}

func decode(kind request.BodyKind, raw []byte) (*request.Body, error) {
	switch kind {
	case request.BodyJSON:
		// Only objects and arrays are accepted at the top level.
		if raw[0] != '{' && raw[0] != '[' {
			return nil, apperror.BadRequest("Invalid JSON body: expected an object or array")
		}
		if !json.Valid(raw) {
			return nil, apperror.BadRequest("Invalid JSON body")
		}
		return &request.Body{Kind: request.BodyJSON, Raw: raw}, nil
	case request.BodyForm:
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, apperror.Wrap(err, http.StatusBadRequest, "Invalid form body")
		}
		return &request.Body{Kind: request.BodyForm, Form: request.ParseExtendedForm(values)}, nil
	default:
		return nil, fmt.Errorf("unknown body kind %q", kind)
	}
}

package middleware

import (
	"net/http"

	"github.com/benvon/food-delivery/internal/apperror"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// ErrOriginNotAllowed is returned for requests whose Origin is not on the allow-list
var ErrOriginNotAllowed = apperror.Forbidden("Not allowed by CORS")

var (
	// DefaultAllowedMethods are the methods advertised to allowed origins
	DefaultAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	// DefaultAllowedHeaders are the request headers advertised to allowed origins
	DefaultAllowedHeaders = []string{"Content-Type", "Authorization"}
)

// CORSOptions configures the origin stage
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	// Debug logs rs/cors decisions through the given logger
	Debug bool
}

// Origin creates the origin-check stage.
//
// Requests without an Origin header pass untouched (curl, server-to-server).
// Requests from an origin on the allow-list get CORS response headers from rs/cors,
// and preflight requests are answered here without reaching the router.
// Any other origin fails with ErrOriginNotAllowed.
func Origin(opts CORSOptions, logger *zap.Logger) Stage {
	allowed := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		allowed[o] = struct{}{}
	}

	methods := opts.AllowedMethods
	if len(methods) == 0 {
		methods = DefaultAllowedMethods
	}
	headers := opts.AllowedHeaders
	if len(headers) == 0 {
		headers = DefaultAllowedHeaders
	}

	corsOpts := cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: opts.AllowCredentials,
	}
	if opts.Debug && logger != nil {
		corsOpts.Debug = true
		corsOpts.Logger = zap.NewStdLog(logger.Named("cors"))
	}
	c := cors.New(corsOpts)

	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return next(w, r)
			}
			if _, ok := allowed[origin]; !ok {
				return ErrOriginNotAllowed
			}

			// Sets Access-Control-* headers; for a preflight it also writes the 204.
			c.HandlerFunc(w, r)
			if isPreflight(r) {
				return nil
			}
			return next(w, r)
		}
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

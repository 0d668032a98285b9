// Package gateway assembles the request pipeline: origin check, body decoding and
// route dispatch, all behind a single error boundary.
package gateway

import (
	"net/http"

	"github.com/benvon/food-delivery/internal/handlers"
	"github.com/benvon/food-delivery/internal/middleware"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

const (
	// UserPrefix is the path prefix owned by the user routes
	UserPrefix = "/api/user"
	// FoodPrefix is the path prefix owned by the food routes
	FoodPrefix = "/api/food"
	// DefaultServiceName names the service in traces
	DefaultServiceName = "food-delivery-api"
)

// RouteGroup registers a set of routes under the prefix router it is given
type RouteGroup interface {
	RegisterRoutes(r *mux.Router)
}

// Options configures the gateway. The allow-list is copied at construction and
// never changes afterwards.
type Options struct {
	AllowedOrigins []string
	BodyLimits     middleware.BodyLimits
	Users          RouteGroup
	Foods          RouteGroup
	Logger         *zap.Logger
	// Tracing wraps matched routes with otelmux spans
	Tracing     bool
	ServiceName string
	Debug       bool
}

// New returns the gateway handler
func New(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	origins := append([]string(nil), opts.AllowedOrigins...)

	pipeline := middleware.Chain(
		middleware.Dispatch(NewRouter(opts)),
		middleware.Origin(middleware.CORSOptions{
			AllowedOrigins:   origins,
			AllowedMethods:   middleware.DefaultAllowedMethods,
			AllowedHeaders:   middleware.DefaultAllowedHeaders,
			AllowCredentials: true,
			Debug:            opts.Debug,
		}, logger),
		middleware.DecodeBody(opts.BodyLimits),
	)

	return middleware.Logging(logger)(middleware.ErrorBoundary(logger, pipeline))
}

// NewRouter builds the dispatch router: the liveness greeting at / and one
// subrouter per route group. Anything unmatched, including a known path with the
// wrong method, is a 404.
func NewRouter(opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.Tracing {
		serviceName := opts.ServiceName
		if serviceName == "" {
			serviceName = DefaultServiceName
		}
		r.Use(otelmux.Middleware(serviceName))
	}

	r.Handle("/", middleware.Route(handlers.Home)).Methods(http.MethodGet, http.MethodHead)

	if opts.Users != nil {
		opts.Users.RegisterRoutes(r.PathPrefix(UserPrefix).Subrouter())
	}
	if opts.Foods != nil {
		opts.Foods.RegisterRoutes(r.PathPrefix(FoodPrefix).Subrouter())
	}

	r.NotFoundHandler = middleware.RouteNotFound()
	r.MethodNotAllowedHandler = middleware.RouteNotFound()

	return r
}

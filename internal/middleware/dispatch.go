package middleware

import (
	"fmt"
	"net/http"

	"github.com/benvon/food-delivery/internal/apperror"
	"github.com/benvon/food-delivery/internal/request"
)

// Dispatch turns a router into the final pipeline stage. Handlers registered on the
// router through Route hand their errors back here, so they reach ErrorBoundary like
// errors from any earlier stage.
func Dispatch(router http.Handler) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		slot := &request.ErrorSlot{}
		router.ServeHTTP(w, r.WithContext(request.WithErrorSlot(r.Context(), slot)))
		return slot.Err()
	}
}

// Route adapts h for registration on a router served by Dispatch.
// Outside Dispatch the error is raised as a panic so an enclosing ErrorBoundary still renders it.
func Route(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		if !request.Forward(r, err) {
			panic(err)
		}
	}
}

// RouteNotFound answers requests no route matched
func RouteNotFound() http.Handler {
	return Route(func(w http.ResponseWriter, r *http.Request) error {
		return apperror.NotFound(fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
	})
}

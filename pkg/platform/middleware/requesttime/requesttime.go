// Package requesttime pins a single timestamp per request so every layer
// that needs "now" observes the same value.
package requesttime

import (
	"net/http"
	"time"

	"waybill/pkg/requestcontext"
)

// Middleware injects the current time into the request context. Services
// read it via requestcontext.Now, which keeps the clock injectable in tests.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Package version tags requests with the API version of the route group that
// matched them.
package version

import (
	"context"
	"net/http"
)

// APIVersion names a mounted route group, e.g. "v1".
type APIVersion string

const V1 APIVersion = "v1"

// Header carries the served API version on every versioned response.
const Header = "X-API-Version"

type contextKey struct{}

// Middleware records v in the request context and echoes it in Header.
// With chi it is installed inside r.Route("/v1", ...), where the version is
// already fixed by the route match.
func Middleware(v APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(Header, string(v))
			ctx := context.WithValue(r.Context(), contextKey{}, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the version set by Middleware, or "" outside a
// versioned group.
func FromContext(ctx context.Context) APIVersion {
	v, _ := ctx.Value(contextKey{}).(APIVersion)
	return v
}

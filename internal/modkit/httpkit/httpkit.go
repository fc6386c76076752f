// Package httpkit is what feature modules mount routes with. It re-exports the
// platform router seam and builds the middleware stack of the versioned API
package httpkit

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	"oilwatch/internal/platform/config"
	phttp "oilwatch/internal/platform/net/http"
	"oilwatch/internal/platform/net/middleware"
	pstrings "oilwatch/internal/platform/strings"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Envelope is the response body, named in the swagger annotations
	Envelope = phttp.Envelope
)

// Param returns a path parameter of the matched route
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Get mounts a handler that takes no body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// PostJSON mounts a handler whose body binds and validates into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// CommonStack is the middleware every /api/v1 request runs through. cfg is
// the service scope; it reads CORS_ORIGINS (comma separated, empty allows
// any), SLOW_REQUEST (default 500ms) and REQUEST_TIMEOUT (default 30s)
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	origins := pstrings.Unique(strings.Split(cfg.MayString("CORS_ORIGINS", ""), ","))
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond)),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)),
	}
}

// Snapshot pins the live corpus snapshot to each request
func Snapshot(p middleware.SnapshotPort) func(http.Handler) http.Handler {
	return middleware.Snapshot(p)
}

// MountAPIV1 mounts /api/v1 with mw applied, then lets mount register routes
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

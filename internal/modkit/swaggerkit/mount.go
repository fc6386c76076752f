// Package swaggerkit mounts the Swagger UI and serves the OpenAPI document
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"oilwatch/internal/platform/logger"
	phttp "oilwatch/internal/platform/net/http"
)

// Options control the docs surface
type Options struct {
	Enabled bool
	// TitleSuffix is appended to the document title, e.g. "(staging)"
	TitleSuffix string
}

// Mount the Swagger UI and JSON document under /api/docs. A document that
// does not parse is logged and answered with 500
func Mount(r phttp.Router, opt Options) {
	if !opt.Enabled {
		return
	}
	doc, err := buildDoc(opt)
	if err != nil {
		logger.Named("swagger").Error().Err(err).Msg("openapi document does not parse")
	}

	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			http.Error(w, "openapi document parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

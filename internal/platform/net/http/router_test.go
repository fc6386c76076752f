package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "oilwatch/internal/platform/net/http"
)

func serve(r phttp.Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestChiRouterNestsRoutesAndMiddleware(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Stack", "api")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/v1", func(api phttp.Router) {
		api.Route("/dictionaries", func(d phttp.Router) {
			d.Get("/{key}", func(w http.ResponseWriter, req *http.Request) {
				_, _ = io.WriteString(w, phttp.Param(req, "key"))
			})
		})
		api.Post("/trends/posts", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		api.Handle("/docs/*", http.NotFoundHandler())
	})

	rec := serve(r, http.MethodGet, "/api/v1/dictionaries/prosocial")
	if rec.Code != http.StatusOK || rec.Body.String() != "prosocial" || rec.Header().Get("X-Stack") != "api" {
		t.Fatalf("code=%d body=%q header=%q", rec.Code, rec.Body.String(), rec.Header().Get("X-Stack"))
	}
	if rec := serve(r, http.MethodPost, "/api/v1/trends/posts"); rec.Code != http.StatusAccepted {
		t.Fatalf("post code=%d", rec.Code)
	}
	if rec := serve(r, http.MethodGet, "/api/v1/trends/posts"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("get on post route code=%d", rec.Code)
	}
	if rec := serve(r, http.MethodGet, "/api/v1/docs/index.html"); rec.Code != http.StatusNotFound {
		t.Fatalf("handle code=%d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(off, "/debug", false)
	if rec := serve(off, http.MethodGet, "/debug/pprof/"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler code=%d", rec.Code)
	}

	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(on, "/debug", true)
	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		if rec := serve(on, http.MethodGet, p); rec.Code != http.StatusOK {
			t.Fatalf("%s code=%d", p, rec.Code)
		}
	}
}

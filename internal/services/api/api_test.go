package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/platform/config"
	perr "oilwatch/internal/platform/errors"
	phttp "oilwatch/internal/platform/net/http"
	"oilwatch/internal/platform/testkit"
	corpusmod "oilwatch/internal/services/corpus/module"
)

type stubSource struct{ err error }

func (stubSource) Name() string { return "stub" }

func (s stubSource) Load(context.Context) ([]corpus.RawArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	str := testkit.Ptr[string]
	at := func(y int) *time.Time { return testkit.Ptr(testkit.Day(y, time.March, 1)) }
	return []corpus.RawArticle{
		{Company: str("BP"), Date: at(2019), SourceURL: str("a"), Text: str("Methane and emissions")},
		{Company: str("Shell"), Date: at(2020), SourceURL: str("b"), Text: str("Global warming")},
		{Company: nil, Date: at(2020), SourceURL: str("c"), Text: str("dropped")},
	}, nil
}

func mount(t *testing.T) phttp.Router {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := phttp.AdaptChi(chi.NewRouter())
	err := Mount(ctx, r, Options{
		Config:        config.New(),
		EnableSwagger: true,
		Corpus:        corpusmod.Options{Src: stubSource{}},
	})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return r
}

func do(r phttp.Router, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestMount_Routes(t *testing.T) {
	r := mount(t)

	tests := []struct {
		method, path, body string
		want               int
		contains           string
	}{
		{http.MethodGet, "/api/v1/meta/health", "", 200, `"ok":true`},
		{http.MethodGet, "/api/v1/meta/corpus", "", 200, `"kept":2`},
		{http.MethodGet, "/api/v1/dictionaries", "", 200, "climate_change"},
		{http.MethodGet, "/api/v1/dictionaries/prosocial/", "", 200, "Prosocial Dictionary"},
		{http.MethodGet, "/api/v1/dictionaries/nope", "", 404, "unknown dictionary"},
		{http.MethodGet, "/api/v1/trends/companies", "", 200, `"name":"Shell"`},
		{http.MethodPost, "/api/v1/trends/posts", `{"by_company":true}`, 200, "Posts by Company by Date"},
		{http.MethodPost, "/api/v1/trends/terms", `{"years":{"start":2020,"end":2019}}`, 200, "inverted"},
		{http.MethodPost, "/api/v1/trends/posts", `{"granularity":"week"}`, 400, "granularity"},
		{http.MethodGet, "/api/docs/doc.json", "", 200, "/trends/posts"},
	}
	for _, tc := range tests {
		rec := do(r, tc.method, tc.path, tc.body)
		if rec.Code != tc.want || !strings.Contains(rec.Body.String(), tc.contains) {
			t.Fatalf("%s %s: code=%d body=%s", tc.method, tc.path, rec.Code, rec.Body.String())
		}
	}

	rec := do(r, http.MethodGet, "/api/v1/trends/companies", "")
	id := rec.Header().Get("X-Snapshot-ID")
	if id == "" {
		t.Fatalf("snapshot id header missing")
	}
	testkit.MustContain(t, do(r, http.MethodGet, "/api/v1/meta/corpus", "").Body.String(), id)

	// docs and the profiler sit outside the versioned stack
	if rec := do(r, http.MethodGet, "/api/docs/doc.json", ""); rec.Header().Get("X-Snapshot-ID") != "" {
		t.Fatalf("docs must not carry a snapshot id")
	}
}

func TestMount_FirstLoadFails(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	err := Mount(context.Background(), r, Options{
		Config: config.New(),
		Corpus: corpusmod.Options{Src: stubSource{err: perr.Sourcef("bucket gone")}},
	})
	if !perr.IsCode(err, perr.ErrorCodeSource) {
		t.Fatalf("want source error, got %v", err)
	}
}

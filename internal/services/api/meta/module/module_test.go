package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"oilwatch/internal/modkit"
	"oilwatch/internal/platform/config"
	perr "oilwatch/internal/platform/errors"
	phttp "oilwatch/internal/platform/net/http"
	"oilwatch/internal/platform/testkit"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

type unloaded struct{}

func (unloaded) Current(context.Context) (*corpusdom.Snapshot, error) {
	return nil, perr.Unavailablef("corpus is not loaded yet")
}

func get(m modkit.Module, path string) *httptest.ResponseRecorder {
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec
}

func TestMetaRoutes(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts[corpusdom.ProviderPort](unloaded{}))
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name=%q ports=%v", m.Name(), m.Ports())
	}

	rec := get(m, "/meta/health")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("health code=%d", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), `"ok":true`)

	if rec := get(m, "/meta/corpus"); rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("corpus code=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMetaWithoutCorpus(t *testing.T) {
	m := New(modkit.Deps{}, modkit.WithPrefix("/status"))
	rec := get(m, "/status/corpus")
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("code=%d", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), "corpus is not wired")
}

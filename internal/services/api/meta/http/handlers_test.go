package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	"oilwatch/internal/core/normalize"
	perr "oilwatch/internal/platform/errors"
	phttp "oilwatch/internal/platform/net/http"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type provider struct{ snap *corpusdom.Snapshot }

func (p provider) Current(context.Context) (*corpusdom.Snapshot, error) {
	if p.snap == nil {
		return nil, perr.Unavailablef("corpus is not loaded yet")
	}
	return p.snap, nil
}

func loaded() provider {
	a := corpus.NewArticle("Eni", time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC), "u", "gas and oil", normalize.New())
	return provider{snap: &corpusdom.Snapshot{
		ID:       "snap-9",
		Source:   "parquet:test.parquet",
		LoadedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Dataset:  corpus.FromArticles([]corpus.Article{a}),
		Registry: dictionary.MustLoad(""),
	}}
}

func backends(pg, ch, rds any) []Backend {
	return []Backend{{"pg", pg}, {"ch", ch}, {"rds", rds}}
}

func call(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/meta", func(sub phttp.Router) { Register(sub, d) })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if out != nil {
		env := struct {
			Data any `json:"data"`
		}{Data: out}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestReady(t *testing.T) {
	tests := []struct {
		name string
		deps Deps
		want string
	}{
		{"only corpus", Deps{Corpus: loaded(), Backends: backends(nil, nil, nil)}, "ok"},
		{"pg ok", Deps{Corpus: loaded(), Backends: backends(pinger{}, nil, nil)}, "ok"},
		{"ch fails", Deps{Corpus: loaded(), Backends: backends(nil, pinger{err: errors.New("refused")}, struct{}{})}, "fail"},
		{"corpus not loaded", Deps{Corpus: provider{}, Backends: backends(nil, nil, nil)}, "fail"},
		{"rds without ping", Deps{Corpus: loaded(), Backends: backends(nil, nil, struct{}{})}, "degraded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got ReadyResponse
			if code := call(t, tc.deps, "/meta/ready", &got); code != stdhttp.StatusOK {
				t.Fatalf("code=%d", code)
			}
			if got.Status != tc.want || len(got.Checks) != 4 || got.Checks[0].Name != "corpus" {
				t.Fatalf("ready=%+v", got)
			}
		})
	}
}

func TestCorpus(t *testing.T) {
	var info corpusdom.Info
	if code := call(t, Deps{Corpus: loaded()}, "/meta/corpus", &info); code != stdhttp.StatusOK {
		t.Fatalf("code=%d", code)
	}
	if info.ID != "snap-9" || info.LoadedAt != "2026-01-02T03:04:05Z" || info.Words != 3 || info.FirstYear != 2018 || info.Dictionaries != 5 {
		t.Fatalf("info=%+v", info)
	}
	if len(info.Companies) != 1 || info.Companies[0] != "Eni" {
		t.Fatalf("companies=%v", info.Companies)
	}

	if code := call(t, Deps{Corpus: provider{}}, "/meta/corpus", nil); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("unloaded code=%d", code)
	}
	if code := call(t, Deps{}, "/meta/corpus", nil); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("unwired code=%d", code)
	}
}

func TestHealthAndService(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	var h HealthResponse
	if code := call(t, Deps{ServiceName: "oilwatch-api", StartedAt: started}, "/meta/health", &h); code != stdhttp.StatusOK {
		t.Fatalf("code=%d", code)
	}
	if !h.OK || h.Service != "oilwatch-api" {
		t.Fatalf("health=%+v", h)
	}
	var s ServiceResponse
	call(t, Deps{ServiceName: "oilwatch-api", StartedAt: started}, "/meta/service", &s)
	if s.Uptime < 59 || !strings.HasSuffix(s.Started, "Z") {
		t.Fatalf("service=%+v", s)
	}
}

// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"oilwatch/internal/core/version"
	"oilwatch/internal/modkit/httpkit"
	perr "oilwatch/internal/platform/errors"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

// Backend is an optional store the ready check pings. A nil Seam was not
// configured and is skipped; a Seam without Ping is unknown
type Backend struct {
	Name string
	Seam any
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Backend
	Corpus      corpusdom.ProviderPort
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/corpus", h.corpus)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"oilwatch-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"oilwatch-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make([]ReadyCheck, 0, len(h.deps.Backends)+1)
	checks = append(checks, h.corpusCheck(ctx))
	for _, b := range h.deps.Backends {
		checks = append(checks, ping(ctx, b))
	}

	// a failure anywhere fails; an unknown backend only degrades
	rank := map[string]int{"ok": 0, "skipped": 0, "unknown": 1, "fail": 2}
	worst := 0
	for _, c := range checks {
		worst = max(worst, rank[c.Status])
	}
	return ReadyResponse{
		Status: [...]string{"ok", "degraded", "fail"}[worst],
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func ping(ctx context.Context, b Backend) ReadyCheck {
	if b.Seam == nil {
		return ReadyCheck{Name: b.Name, Status: "skipped"}
	}
	p, ok := b.Seam.(interface{ Ping(context.Context) error })
	if !ok {
		return ReadyCheck{Name: b.Name, Status: "unknown"}
	}
	return result(b.Name, p.Ping(ctx))
}

func result(name string, err error) ReadyCheck {
	if err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// corpusCheck fails until the first snapshot has loaded
func (h *handlers) corpusCheck(ctx context.Context) ReadyCheck {
	if h.deps.Corpus == nil {
		return ReadyCheck{Name: "corpus", Status: "skipped"}
	}
	_, err := h.deps.Corpus.Current(ctx)
	return result("corpus", err)
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/corpus Meta metaCorpus
// @Summary Loaded corpus snapshot summary
// @Tags Meta
// @Produce json
// @Success 200 type corpusdom.Info ok
// @Failure 503 {object} httpkit.Envelope "corpus is not loaded yet"
// @Router /meta/corpus [get]
func (h *handlers) corpus(r *http.Request) (any, error) {
	if h.deps.Corpus == nil {
		return nil, perr.Unavailablef("corpus is not wired")
	}
	snap, err := corpusdom.Resolve(r.Context(), h.deps.Corpus)
	if err != nil {
		return nil, err
	}
	return snap.Info(), nil
}

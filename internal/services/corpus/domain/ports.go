// Package domain defines the corpus snapshot and the ports around it
package domain

import (
	"context"
	"time"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	"oilwatch/internal/core/selection"
)

// Source produces raw article rows from an external store
type Source interface {
	Name() string
	Load(ctx context.Context) ([]corpus.RawArticle, error)
}

// Snapshot is one immutable load of the corpus, shared read-only by every request
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Source   string
	Stats    corpus.Stats
	Dataset  corpus.Dataset
	Registry *dictionary.Registry
}

// Info summarizes a snapshot for clients
type Info struct {
	ID           string       `json:"id" example:"3f6c1c1e-3a0e-4b8e-9a57-0d4b2f1f8d11"`
	Source       string       `json:"source" example:"parquet:combined_oil_company_dta.parquet"`
	LoadedAt     string       `json:"loaded_at" example:"2025-09-03T13:00:00Z"`
	Stats        corpus.Stats `json:"stats"`
	Companies    []string     `json:"companies"`
	FirstYear    int          `json:"first_year,omitempty" example:"2010"`
	LastYear     int          `json:"last_year,omitempty" example:"2023"`
	Words        int64        `json:"words" example:"1250000"`
	Dictionaries int          `json:"dictionaries" example:"5"`
}

// Info builds the client summary
func (s *Snapshot) Info() Info {
	in := Info{
		ID:        s.ID,
		Source:    s.Source,
		LoadedAt:  s.LoadedAt.UTC().Format(time.RFC3339),
		Stats:     s.Stats,
		Companies: selection.Companies(s.Dataset),
		Words:     s.Dataset.Words(),
	}
	if lo, hi, ok := selection.Years(s.Dataset); ok {
		in.FirstYear, in.LastYear = lo, hi
	}
	if s.Registry != nil {
		in.Dictionaries = s.Registry.Len()
	}
	return in
}

// ProviderPort hands out the current snapshot
type ProviderPort interface {
	Current(ctx context.Context) (*Snapshot, error)
}

// LoaderPort replaces the current snapshot from the source
type LoaderPort interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// WorkerPort reloads on an interval until ctx ends
type WorkerPort interface {
	Run(ctx context.Context) error
}

type pinKey struct{}

// Pin returns ctx carrying snap, so one request reads one snapshot even when a
// reload swaps the current one mid-flight
func Pin(ctx context.Context, snap *Snapshot) context.Context {
	return context.WithValue(ctx, pinKey{}, snap)
}

// Pinned returns the snapshot pinned on ctx
func Pinned(ctx context.Context) (*Snapshot, bool) {
	snap, ok := ctx.Value(pinKey{}).(*Snapshot)
	return snap, ok && snap != nil
}

// Resolve returns the snapshot pinned on ctx, asking p only when there is none
func Resolve(ctx context.Context, p ProviderPort) (*Snapshot, error) {
	if snap, ok := Pinned(ctx); ok {
		return snap, nil
	}
	return p.Current(ctx)
}

// Package service loads corpus snapshots and serves the current one
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	"oilwatch/internal/core/normalize"
	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/logger"
	dom "oilwatch/internal/services/corpus/domain"

	"github.com/google/uuid"
)

// Service implements the loader, provider and worker ports
type Service interface {
	dom.LoaderPort
	dom.ProviderPort
	dom.WorkerPort
}

// Config controls loading
type Config struct {
	FoldMarks   bool
	ReloadEvery time.Duration
}

// Svc keeps the current snapshot behind an atomic pointer; loads never block readers
type Svc struct {
	src  dom.Source
	reg  *dictionary.Registry
	norm *normalize.Normalizer
	cfg  Config

	cur atomic.Pointer[dom.Snapshot]
	mu  sync.Mutex // one load at a time

	now   func() time.Time
	newID func() string
}

// New constructs the service
func New(src dom.Source, reg *dictionary.Registry, cfg Config) *Svc {
	if src == nil {
		panic("corpus.Service requires a non nil Source")
	}
	if reg == nil {
		panic("corpus.Service requires a non nil Registry")
	}
	var opts []normalize.Option
	if cfg.FoldMarks {
		opts = append(opts, normalize.WithFoldMarks())
	}
	return &Svc{
		src:   src,
		reg:   reg,
		norm:  normalize.New(opts...),
		cfg:   cfg,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Load reads the source, prepares a new dataset and swaps it in.
// On failure the previous snapshot stays current
func (s *Svc) Load(ctx context.Context) (*dom.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.C(ctx).With().Str("component", "corpus").Str("source", s.src.Name()).Logger()
	start := s.now()

	rows, err := s.src.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("corpus load failed")
		if _, ok := perr.As(err); !ok {
			err = perr.Wrap(err, perr.ErrorCodeSource, "load corpus")
		}
		return nil, err
	}
	ds, st := corpus.Prepare(rows, s.norm)

	snap := &dom.Snapshot{
		ID:       s.newID(),
		LoadedAt: s.now().UTC(),
		Source:   s.src.Name(),
		Stats:    st,
		Dataset:  ds,
		Registry: s.reg,
	}
	s.cur.Store(snap)

	if st.Dropped > 0 {
		log.Debug().Int("dropped", st.Dropped).Msg("dropped rows with missing fields")
	}
	log.Info().
		Str("snapshot_id", snap.ID).
		Int("loaded", st.Loaded).
		Int("kept", st.Kept).
		Int("dropped", st.Dropped).
		Dur("took", s.now().Sub(start)).
		Msg("corpus loaded")
	return snap, nil
}

// Current returns the live snapshot or Unavailable before the first load
func (s *Svc) Current(_ context.Context) (*dom.Snapshot, error) {
	if snap := s.cur.Load(); snap != nil {
		return snap, nil
	}
	return nil, perr.Unavailablef("corpus is not loaded yet")
}

// Run reloads every ReloadEvery until ctx ends. A failed reload is logged and
// the previous snapshot keeps serving. Zero interval returns at once
func (s *Svc) Run(ctx context.Context) error {
	if s.cfg.ReloadEvery <= 0 {
		return nil
	}
	t := time.NewTicker(s.cfg.ReloadEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := s.Load(ctx); err != nil && ctx.Err() == nil {
				logger.C(ctx).Warn().Err(err).Msg("corpus reload failed, keeping previous snapshot")
			}
		}
	}
}

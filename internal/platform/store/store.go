// Package store opens the optional backends: Postgres and ClickHouse as
// article sources, Redis as the view cache
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"oilwatch/internal/platform/logger"
	"oilwatch/internal/platform/store/ch"
	"oilwatch/internal/platform/store/pg"
	"oilwatch/internal/platform/store/rds"
)

// Row is a single row result
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// Querier is the read surface shared by the sql and clickhouse seams
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// RowQuerier is the surface sql repos use
type RowQuerier interface {
	Querier
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open transactions
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar read seam
type Clickhouse interface {
	Querier
	Close() error
}

// KV stores byte values with an expiry; a zero ttl never expires
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds the backends that are configured; the others stay nil
type Store struct {
	Log logger.Logger

	PG  TxRunner
	CH  Clickhouse
	RDS KV
}

// Option mutates the Store before backends open
type Option func(*Store)

// WithLogger sets the logger SQL tracing and open messages go to
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.Log = l }
}

// Open connects every enabled backend in cfg. On error the backends already
// opened are closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Get()}
	for _, o := range opts {
		o(s)
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	if err := s.open(ctx, cfg); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) open(ctx context.Context, cfg Config) error {
	if cfg.PG.Enabled {
		pool, err := pg.Open(ctx, pg.Config{
			URL:         cfg.PG.URL,
			MaxConns:    cfg.PG.MaxConns,
			Attempts:    cfg.PG.ConnectRetries,
			PingTimeout: cfg.PG.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		var tracer pg.QueryTracer
		if cfg.PG.LogSQL {
			tracer = pg.Tracer(s.Log)
		}
		s.PG = newPGStore(pool, tracer, time.Duration(cfg.PG.SlowQueryMs)*time.Millisecond)
		s.Log.Debug().Msg("postgres ready")
	}

	if cfg.CH.Enabled {
		conn, err := ch.Open(ch.Config{URL: cfg.CH.URL, App: cmp.Or(cfg.CH.ClientName, cfg.AppName), Role: cfg.CH.ClientTag})
		if err != nil {
			return fmt.Errorf("ch: %w", err)
		}
		s.CH = chStore{conn}
		s.Log.Debug().Str("client", cfg.CH.ClientName).Str("role", cfg.CH.ClientTag).Msg("clickhouse client ready")
	}

	if cfg.RDS.Enabled {
		kv, err := rds.Open(ctx, rds.Config{Addr: cfg.RDS.Addr, Password: cfg.RDS.Password, DB: cfg.RDS.DB})
		if err != nil {
			return fmt.Errorf("rds: %w", err)
		}
		s.RDS = kv
		s.Log.Debug().Str("addr", cfg.RDS.Addr).Msg("redis ready")
	}
	return nil
}

type seam struct {
	name string
	v    any
}

// seams lists the configured backends by log name
func (s *Store) seams() []seam {
	var out []seam
	for _, n := range []seam{{"pg", s.PG}, {"ch", s.CH}, {"rds", s.RDS}} {
		if n.v != nil {
			out = append(out, n)
		}
	}
	return out
}

// Guard pings every configured seam that can report readiness
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, n := range s.seams() {
		if p, ok := n.v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every configured backend
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, n := range s.seams() {
		if c, ok := n.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

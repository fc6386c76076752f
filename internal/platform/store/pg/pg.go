// Package pg opens the Postgres pool the article sources read from
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32

	// Attempts bounds the startup ping loop, PingTimeout each ping
	Attempts    int
	PingTimeout time.Duration
}

var newPool = pgxpool.NewWithConfig

// backoff between startup pings, doubling up to the ceiling
var backoff = struct{ start, ceiling time.Duration }{150 * time.Millisecond, 2 * time.Second}

// Open parses cfg.URL, builds the pool and waits until the server answers a
// ping. The pool is closed again when every attempt fails or ctx ends
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.Attempts, 1)
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	wait := backoff.start
	for i := 1; ; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = pool.Ping(pctx)
		cancel()
		if err == nil {
			return pool, nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, backoff.ceiling)
	}
	pool.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
}

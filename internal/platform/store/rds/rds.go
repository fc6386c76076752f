// Package rds provides a small redis client for cached values
package rds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RDS wraps a go-redis client
type RDS struct {
	client *redis.Client
}

// Open builds a client and verifies connectivity
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: empty addr")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RDS{client: client}, nil
}

// New wraps an existing client
func New(client *redis.Client) *RDS { return &RDS{client: client} }

// Get returns the value at key; a missing key is (nil, false, nil)
func (r *RDS) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores val at key; ttl <= 0 keeps it until evicted
func (r *RDS) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, key, val, ttl).Err()
}

// Ping checks the server is reachable
func (r *RDS) Ping(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// Close closes the client
func (r *RDS) Close() error { return r.client.Close() }

package rds

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestOpen_EmptyAddr(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// port 1 is closed on all test hosts
	_, err := Open(ctx, Config{Addr: "127.0.0.1:1"})
	if err == nil || !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Fatalf("expected connect error naming the addr, got %v", err)
	}
}

func TestClientErrorsSurface(t *testing.T) {
	t.Parallel()

	r := New(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond}))
	defer func() { _ = r.Close() }()

	ctx := context.Background()
	if _, ok, err := r.Get(ctx, "k"); err == nil || ok {
		t.Fatalf("Get should surface the dial error, got ok=%v err=%v", ok, err)
	}
	if err := r.Set(ctx, "k", []byte("v"), -time.Second); err == nil {
		t.Fatalf("Set should surface the dial error")
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("Ping should fail")
	}
}

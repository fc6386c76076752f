package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeKV struct {
	pingErr, closeErr error
	closed            bool
}

func (f *fakeKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (f *fakeKV) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
func (f *fakeKV) Ping(context.Context) error { return f.pingErr }
func (f *fakeKV) Close() error               { f.closed = true; return f.closeErr }

// fakeCH has no Ping, so Guard skips it
type fakeCH struct{ closed bool }

func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                        { f.closed = true; return nil }

func quiet() Option { return WithLogger(zerolog.New(io.Discard)) }

func TestOpenNothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{AppName: "oilwatch"}, quiet())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil || s.RDS != nil {
		t.Fatalf("store=%+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

func TestOpenClickhouseIsLazy(t *testing.T) {
	s, err := Open(context.Background(), Config{
		AppName: "oilwatch",
		CH:      CHConfig{Enabled: true, URL: "clickhouse://default:@127.0.0.1:1/news", ClientTag: "report"},
	}, quiet())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.CH == nil || s.PG != nil {
		t.Fatalf("store=%+v", s)
	}
	if err := s.Guard(context.Background()); err == nil || !strings.HasPrefix(err.Error(), "ch: ") {
		t.Fatalf("guard err=%v", err)
	}
	_ = s.Close(context.Background())
}

func TestOpenErrorsNameTheBackend(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: "postgres://%zz"}}, quiet())
	if err == nil || !strings.HasPrefix(err.Error(), "pg: ") {
		t.Fatalf("pg err=%v", err)
	}

	// clickhouse opens first, then redis fails; the error names redis
	_, err = Open(ctx, Config{
		CH:  CHConfig{Enabled: true, URL: "clickhouse://127.0.0.1:1"},
		RDS: RedisConfig{Enabled: true},
	}, quiet())
	if err == nil || !strings.HasPrefix(err.Error(), "rds: ") {
		t.Fatalf("rds err=%v", err)
	}
}

func TestGuardAndCloseJoinErrors(t *testing.T) {
	down := errors.New("connection refused")
	kv := &fakeKV{pingErr: down, closeErr: io.ErrClosedPipe}
	cs := &fakeCH{}
	s := &Store{CH: cs, RDS: kv}

	if err := s.Guard(context.Background()); !errors.Is(err, down) || !strings.Contains(err.Error(), "rds: connection refused") {
		t.Fatalf("guard err=%v", err)
	}
	if err := s.Close(context.Background()); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("close err=%v", err)
	}
	if !kv.closed || !cs.closed {
		t.Fatalf("closed kv=%v ch=%v", kv.closed, cs.closed)
	}

	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatalf("nil store must fail Guard")
	}
}

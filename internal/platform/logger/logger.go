// Package logger owns the process wide zerolog logger.
//
// Request scoped children carry the chi request id and the id of the corpus
// snapshot the request was pinned to, so every line a trend view logs can be
// tied back to the data it was computed from
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"oilwatch/internal/platform/config/raw"
)

// Logger is the project logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string // trace, debug, info, warn, error; anything else is info
	Format  string // console or json
	Service string
	Caller  bool
	Writer  io.Writer // stdout when nil
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
func FromEnv() Options {
	return Options{
		Level:   raw.Env("LOG_LEVEL", "info"),
		Format:  strings.ToLower(raw.Env("LOG_FORMAT", "console")),
		Service: raw.Env("LOG_SERVICE", "oilwatch"),
		Caller:  raw.Flag("LOG_CALLER", false),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root logger. Only the first call has an effect; Get calls it
// with FromEnv when nothing did before
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

func build(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lc := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		lc = lc.Str("service", opt.Service)
	}
	if opt.Caller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Get returns the root logger
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type snapshotKey struct{}

// WithSnapshot records the corpus snapshot id a request is served from
func WithSnapshot(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, snapshotKey{}, id)
}

// C returns a child of the root logger with request_id and snapshot_id from ctx
func C(ctx context.Context) *Logger { return from(Get(), ctx) }

func from(base *Logger, ctx context.Context) *Logger {
	lc := base.With()
	if id := chimw.GetReqID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id, _ := ctx.Value(snapshotKey{}).(string); id != "" {
		lc = lc.Str("snapshot_id", id)
	}
	l := lc.Logger()
	return &l
}

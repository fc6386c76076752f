package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"oilwatch/internal/platform/testkit"
)

func TestLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Fatalf("level(%q)=%v want %v", in, got, want)
		}
	}
}

func TestBuildJSON(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "warn", Format: "json", Service: "oilwatch-api", Writer: &buf})
	l.Info().Msg("corpus loaded")
	l.Warn().Int("dropped", 3).Msg("corpus loaded with gaps")

	out := buf.String()
	if strings.Contains(out, `"message":"corpus loaded"`) {
		t.Fatalf("info line should be filtered at warn: %s", out)
	}
	testkit.MustContain(t, out, `"service":"oilwatch-api"`)
	testkit.MustContain(t, out, `"dropped":3`)
}

func TestFromCarriesRequestAndSnapshot(t *testing.T) {
	var buf bytes.Buffer
	base := build(Options{Format: "json", Writer: &buf})

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-7")
	ctx = WithSnapshot(ctx, "a1b2c3")
	from(&base, ctx).Info().Msg("trend view built")
	from(&base, context.Background()).Info().Msg("no request")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%q", lines)
	}
	testkit.MustContain(t, lines[0], `"request_id":"req-7"`)
	testkit.MustContain(t, lines[0], `"snapshot_id":"a1b2c3"`)
	if strings.Contains(lines[1], "request_id") || strings.Contains(lines[1], "snapshot_id") {
		t.Fatalf("background line has request fields: %s", lines[1])
	}
	if WithSnapshot(ctx, "") != ctx {
		t.Fatalf("empty snapshot id must not wrap the context")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "")
	t.Setenv("LOG_CALLER", "true")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "oilwatch" || !opt.Caller {
		t.Fatalf("opt=%+v", opt)
	}
}

func TestGetAndNamed(t *testing.T) {
	if Get() == nil || Get() != Get() {
		t.Fatalf("Get must return the same root")
	}
	if Named("corpus") == Get() {
		t.Fatalf("Named must return a child")
	}
}

// Package config reads oilwatch settings from environment variables.
//
// Every reader takes a default. A malformed value is logged at warn and the
// default is used, so a typo in CORPUS_RELOAD_EVERY never stops the API; an
// out of range enum is the one setting that refuses to start
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"oilwatch/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("CORPUS_")
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

func may[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(k)).
			Str("value", s).
			Interface("default", def).
			Msg("config: malformed value, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def if missing/empty
func (c Conf) MayString(k, def string) string {
	return may(c, k, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns the value or def
func (c Conf) MayInt(k string, def int) int { return may(c, k, def, strconv.Atoi) }

// MayBool accepts anything strconv.ParseBool does
func (c Conf) MayBool(k string, def bool) bool { return may(c, k, def, strconv.ParseBool) }

// MayDuration accepts Go duration strings like 90s or 1h30m. "0" is a valid
// value and is returned as zero, not replaced by def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return may(c, k, def, time.ParseDuration)
}

// MayEnum returns the allowed spelling matching the value case-insensitively,
// or def when unset. Anything else panics with the allowed set
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v, ok := c.lookup(k)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("config: value not allowed")
	return ""
}

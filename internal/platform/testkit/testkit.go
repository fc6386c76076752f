// Package testkit holds the helpers the oilwatch test suites share
package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MustPanic asserts that fn panics and returns the recovered value
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustPanicWith asserts that fn panics with a message containing want
func MustPanicWith(t testing.TB, want string, fn func()) {
	t.Helper()
	r := MustPanic(t, fn)
	if msg := fmt.Sprint(r); !strings.Contains(msg, want) {
		t.Fatalf("panic %q does not mention %q", msg, want)
	}
}

// MustContain asserts that out contains needle. On failure the full output is
// written under t.TempDir so long tables and log dumps stay readable
func MustContain(t testing.TB, out, needle string) {
	t.Helper()
	if strings.Contains(out, needle) {
		return
	}
	path := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(path, []byte(out), 0o600)
	t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, path)
}

// Swap replaces a package level seam for the duration of the test
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Day is midnight UTC on the given date, the shape every article date has
// after loading
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to v, for nullable source columns
func Ptr[T any](v T) *T { return &v }

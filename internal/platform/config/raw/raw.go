// Package raw reads environment variables without logging. The logger builds
// its own options from here; config proper logs through the logger
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env returns the trimmed value of name, or def when unset or blank
func Env(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// Flag parses name with strconv.ParseBool; unset or unparsable gives def
func Flag(name string, def bool) bool {
	v, err := strconv.ParseBool(Env(name, ""))
	if err != nil {
		return def
	}
	return v
}

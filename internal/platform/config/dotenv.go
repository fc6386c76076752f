package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"oilwatch/internal/platform/logger"
)

// LoadDotEnv merges the given .env files into the process environment.
// Variables already set win over file values; missing files are skipped.
// Returns the files that were applied
func LoadDotEnv(paths ...string) []string {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Get().Warn().Err(err).Str("file", p).Msg("dotenv: skipped unreadable file")
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded
}

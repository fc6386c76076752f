package module

import (
	"time"

	"oilwatch/internal/adapters/source"
	"oilwatch/internal/platform/config"
	dom "oilwatch/internal/services/corpus/domain"
)

// Options controls where the corpus comes from and how it is prepared
type Options struct {
	Source      string // parquet | s3 | pg | ch
	Path        string
	Table       string
	S3          S3Options
	Dictionary  string
	FoldMarks   bool
	ReloadEvery time.Duration

	// Src replaces the configured source outright (tests, CLI pipes)
	Src dom.Source
}

// S3Options selects the parquet object
type S3Options struct {
	Bucket       string
	Key          string
	Region       string
	Profile      string
	Endpoint     string
	UsePathStyle bool
}

// FromConfig reads CORPUS_* and DICTIONARY_FILE
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORPUS_")
	return Options{
		Source: c.MayEnum("SOURCE", "parquet", "parquet", "s3", "pg", "ch"),
		Path:   c.MayString("PATH", source.DefaultFile),
		Table:  c.MayString("TABLE", source.DefaultTable),
		S3: S3Options{
			Bucket:       c.MayString("S3_BUCKET", ""),
			Key:          c.MayString("S3_KEY", source.DefaultFile),
			Region:       c.MayString("S3_REGION", ""),
			Profile:      c.MayString("S3_PROFILE", ""),
			Endpoint:     c.MayString("S3_ENDPOINT", ""),
			UsePathStyle: c.MayBool("S3_PATH_STYLE", false),
		},
		Dictionary:  cfg.Prefix("DICTIONARY_").MayString("FILE", ""),
		FoldMarks:   c.MayBool("FOLD_MARKS", false),
		ReloadEvery: c.MayDuration("RELOAD_EVERY", 0),
	}
}

package config

import (
	"testing"
	"time"

	"oilwatch/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	c := New().Prefix("CORPUS_").Prefix("S3_")
	if got := c.key("BUCKET"); got != "CORPUS_S3_BUCKET" {
		t.Fatalf("key=%q", got)
	}
	t.Setenv("CORPUS_S3_BUCKET", "  news-archive ")
	if got := c.MayString("BUCKET", ""); got != "news-archive" {
		t.Fatalf("bucket=%q", got)
	}
}

func TestMayFallsBackOnMissingAndMalformed(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	if got := c.MayInt("MAX_CONNS", 4); got != 4 {
		t.Fatalf("missing int=%d", got)
	}
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "eight")
	if got := c.MayInt("MAX_CONNS", 4); got != 4 {
		t.Fatalf("malformed int=%d", got)
	}
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", " 8 ")
	if got := c.MayInt("MAX_CONNS", 4); got != 8 {
		t.Fatalf("int=%d", got)
	}

	t.Setenv("SERVICE_PGSQL_LOG_SQL", "maybe")
	if c.MayBool("LOG_SQL", false) {
		t.Fatalf("malformed bool should fall back")
	}
	t.Setenv("SERVICE_PGSQL_LOG_SQL", "1")
	if !c.MayBool("LOG_SQL", false) {
		t.Fatalf("1 is true")
	}
}

func TestMayDurationKeepsExplicitZero(t *testing.T) {
	c := New().Prefix("CACHE_REDIS_")
	if got := c.MayDuration("TTL", time.Minute); got != time.Minute {
		t.Fatalf("unset ttl=%v", got)
	}
	t.Setenv("CACHE_REDIS_TTL", "0")
	if got := c.MayDuration("TTL", time.Minute); got != 0 {
		t.Fatalf("explicit zero ttl=%v", got)
	}
	t.Setenv("CACHE_REDIS_TTL", "10 minutes")
	if got := c.MayDuration("TTL", time.Minute); got != time.Minute {
		t.Fatalf("malformed ttl=%v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CORPUS_")
	if got := c.MayEnum("SOURCE", "parquet", "parquet", "s3"); got != "parquet" {
		t.Fatalf("default=%q", got)
	}
	t.Setenv("CORPUS_SOURCE", "S3")
	if got := c.MayEnum("SOURCE", "parquet", "parquet", "s3"); got != "s3" {
		t.Fatalf("want canonical spelling, got %q", got)
	}
	t.Setenv("CORPUS_SOURCE", "ftp")
	testkit.MustPanicWith(t, "not allowed", func() { c.MayEnum("SOURCE", "parquet", "parquet", "s3") })
}

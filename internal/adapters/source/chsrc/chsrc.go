// Package chsrc reads the article table from ClickHouse
package chsrc

import (
	"context"
	"strings"
	"time"

	"oilwatch/internal/adapters/source"
	"oilwatch/internal/core/corpus"
	"oilwatch/internal/modkit/repokit"
	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/store"
)

// Source loads articles from a ClickHouse table; nullable columns scan to nil
type Source struct {
	db    repokit.Reader
	table string
	ident string
}

// New constructs the source over db
func New(db store.Clickhouse, table string) (*Source, error) {
	if db == nil {
		return nil, perr.Configf("ch source requires clickhouse to be enabled")
	}
	parts, err := source.Table(table)
	if err != nil {
		return nil, err
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = "`" + p + "`"
	}
	return &Source{
		db:    db,
		table: strings.Join(parts, "."),
		ident: strings.Join(quoted, "."),
	}, nil
}

// Name identifies the source in logs and snapshot info
func (s *Source) Name() string { return "ch:" + s.table }

// Load reads every row ordered by date
func (s *Source) Load(ctx context.Context) ([]corpus.RawArticle, error) {
	sql := "SELECT " + strings.Join(source.Columns, ", ") + " FROM " + s.ident +
		" ORDER BY date ASC NULLS LAST, company_name ASC NULLS LAST, source_url ASC NULLS LAST"
	out, err := store.Many(ctx, s.db, scanArticle, sql)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeSource, "load articles from %s", s.Name())
	}
	if out == nil {
		out = []corpus.RawArticle{}
	}
	return out, nil
}

func scanArticle(row store.Row) (corpus.RawArticle, error) {
	var (
		company, url, text *string
		date               *time.Time
	)
	if err := row.Scan(&company, &date, &url, &text); err != nil {
		return corpus.RawArticle{}, err
	}
	return corpus.RawArticle{Company: company, Date: date, SourceURL: url, Text: text}, nil
}

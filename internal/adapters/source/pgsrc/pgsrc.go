// Package pgsrc reads the article table from Postgres inside a read only transaction
package pgsrc

import (
	"context"
	"strings"
	"time"

	"oilwatch/internal/adapters/source"
	"oilwatch/internal/core/corpus"
	"oilwatch/internal/modkit/repokit"
	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/logger"
	"oilwatch/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// Repo is the persistence surface the source reads through
type Repo interface {
	Count(ctx context.Context) (int64, error)
	Articles(ctx context.Context) ([]corpus.RawArticle, error)
}

type (
	// PG binds the repo for one table
	PG struct{ ident string }
	// queries implements Repo
	queries struct {
		q     repokit.Queryer
		ident string
	}
)

// NewPG returns a binder for table, validated and quoted
func NewPG(table string) (repokit.Binder[Repo], error) {
	parts, err := source.Table(table)
	if err != nil {
		return nil, err
	}
	return PG{ident: pgx.Identifier(parts).Sanitize()}, nil
}

// Bind wires a Queryer to the repo
func (p PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, ident: p.ident} }

func (r *queries) Count(ctx context.Context) (int64, error) {
	return store.Scalar[int64](ctx, r.q, "select count(*) from "+r.ident)
}

func (r *queries) Articles(ctx context.Context) ([]corpus.RawArticle, error) {
	sql := "select " + strings.Join(source.Columns, ", ") + " from " + r.ident +
		" order by date asc nulls last, company_name asc nulls last, source_url asc nulls last"
	return store.Many(ctx, r.q, scanArticle, sql)
}

// scanArticle keeps nulls as nil pointers so the corpus can drop them
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

// Source loads articles from a Postgres table
type Source struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
	table  string
}

// New constructs the source over db
func New(db repokit.TxRunner, table string) (*Source, error) {
	if db == nil {
		return nil, perr.Configf("pg source requires postgres to be enabled")
	}
	b, err := NewPG(table)
	if err != nil {
		return nil, err
	}
	if table == "" {
		table = source.DefaultTable
	}
	return &Source{db: db, binder: b, table: table}, nil
}

// Name identifies the source in logs and snapshot info
func (s *Source) Name() string { return "pg:" + s.table }

func readOnly(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, "set transaction read only")
	return err
}

// Load counts, then reads every row in one snapshot
func (s *Source) Load(ctx context.Context) ([]corpus.RawArticle, error) {
	var out []corpus.RawArticle
	err := repokit.WithTx(ctx, repokit.WithBeginHooks(s.db, readOnly), func(q repokit.Queryer) error {
		repo := repokit.MustBind(s.binder, q)
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		logger.C(ctx).Debug().Str("table", s.table).Int64("rows", n).Msg("reading articles")
		out, err = repo.Articles(ctx)
		return err
	})
	if err != nil {
		return nil, perr.FromPostgresf(err, "load articles from %s", s.table)
	}
	if out == nil {
		out = []corpus.RawArticle{}
	}
	return out, nil
}

package pgsrc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"oilwatch/internal/modkit/repokit"
	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/store"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeTag struct{}

func (fakeTag) String() string      { return "SET" }
func (fakeTag) RowsAffected() int64 { return 0 }

type fakeRow struct{ n int64 }

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.n
	return nil
}

// fakeRows yields article tuples; a nil field is a sql null
type fakeRows struct {
	data [][4]any
	i    int
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}
func (r *fakeRows) Columns() []string {
	return []string{"company_name", "date", "source_url", "text"}
}

func (r *fakeRows) Scan(dest ...any) error {
	cur := r.data[r.i-1]
	for j, d := range dest {
		switch p := d.(type) {
		case **string:
			if s, ok := cur[j].(string); ok {
				*p = &s
			}
		case **time.Time:
			if tm, ok := cur[j].(time.Time); ok {
				*p = &tm
			}
		default:
			return errors.New("unexpected dest")
		}
	}
	return nil
}

type fakeDB struct {
	rows     [][4]any
	queryErr error
	execs    []string
	queries  []string
	inTx     bool
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return fakeTag{}, nil
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.queries = append(f.queries, sql)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) store.Row {
	f.queries = append(f.queries, sql)
	return fakeRow{n: int64(len(f.rows))}
}

func (f *fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	f.inTx = true
	defer func() { f.inTx = false }()
	return fn(f)
}

var _ repokit.TxRunner = (*fakeDB)(nil)

func TestLoad_ReadOnlyTxAndNulls(t *testing.T) {
	d := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{rows: [][4]any{
		{"BP", d, "https://a", "oil"},
		{nil, d, "https://b", "no company"},
		{"Shell", nil, "https://c", "no date"},
	}}
	src, err := New(db, "news.articles")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if src.Name() != "pg:news.articles" {
		t.Fatalf("name=%q", src.Name())
	}

	got, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(db.execs) != 1 || db.execs[0] != "set transaction read only" {
		t.Fatalf("execs=%v", db.execs)
	}
	if len(db.queries) != 2 || !strings.Contains(db.queries[0], `count(*) from "news"."articles"`) {
		t.Fatalf("queries=%v", db.queries)
	}
	if !strings.HasPrefix(db.queries[1], `select company_name, date, source_url, text from "news"."articles"`) {
		t.Fatalf("select=%q", db.queries[1])
	}
	if len(got) != 3 || *got[0].Company != "BP" || !got[0].Date.Equal(d) {
		t.Fatalf("got %+v", got)
	}
	if got[1].Company != nil || got[2].Date != nil {
		t.Fatalf("nulls must stay nil: %+v %+v", got[1], got[2])
	}
}

func TestLoad_EmptyTableIsNotNil(t *testing.T) {
	src, _ := New(&fakeDB{}, "")
	got, err := src.Load(context.Background())
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("got %#v err %v", got, err)
	}
	if src.Name() != "pg:oil_company_articles" {
		t.Fatalf("name=%q", src.Name())
	}
}

func TestLoad_MapsPostgresErrors(t *testing.T) {
	db := &fakeDB{queryErr: &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}}
	src, _ := New(db, "missing")
	if _, err := src.Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("undefined table should be a config error, got %v", err)
	}

	db = &fakeDB{queryErr: errors.New("boom")}
	src, _ = New(db, "articles")
	if _, err := src.Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeSource) {
		t.Fatalf("want source error, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, "articles"); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("nil db: %v", err)
	}
	if _, err := New(&fakeDB{}, "articles; drop"); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("bad table: %v", err)
	}
}

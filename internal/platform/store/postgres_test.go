package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"oilwatch/internal/platform/store/pg"
)

type fakePgxRows struct {
	pgx.Rows
	left int
}

func (r *fakePgxRows) Next() bool             { r.left--; return r.left >= 0 }
func (r *fakePgxRows) Scan(dest ...any) error { return nil }
func (r *fakePgxRows) Err() error             { return nil }
func (r *fakePgxRows) Close()                 {}
func (r *fakePgxRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "company_name"}, {Name: "date"}}
}

type fakePgxRow struct{ err error }

func (r fakePgxRow) Scan(...any) error { return r.err }

// fakePgx answers every statement after delay
type fakePgx struct {
	delay time.Duration
	err   error
}

func (f fakePgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	time.Sleep(f.delay)
	return pgconn.NewCommandTag("SET"), f.err
}

func (f fakePgx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakePgxRows{left: 2}, nil
}

func (f fakePgx) QueryRow(context.Context, string, ...any) pgx.Row { return fakePgxRow{err: f.err} }

type recorder struct{ events []pg.QueryEvent }

func (r *recorder) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

func TestTracedReportsEveryStatement(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	q := traced{q: fakePgx{}, tracer: rec}

	if ct, err := q.Exec(ctx, "set transaction read only"); err != nil || ct.String() != "SET" {
		t.Fatalf("exec: %v %v", ct, err)
	}
	rows, err := q.Query(ctx, "select company_name, date from articles")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[0] != "company_name" {
		t.Fatalf("cols=%v", cols)
	}
	n := 0
	for rows.Next() {
		n++
	}
	rows.Close()
	if n != 2 {
		t.Fatalf("rows=%d", n)
	}

	row := q.QueryRow(ctx, "select count(*) from articles")
	if len(rec.events) != 2 {
		t.Fatalf("QueryRow must report after Scan, events=%d", len(rec.events))
	}
	var count int64
	_ = row.Scan(&count)
	if len(rec.events) != 3 || rec.events[2].SQL != "select count(*) from articles" {
		t.Fatalf("events=%+v", rec.events)
	}
	for _, ev := range rec.events {
		if ev.Slow {
			t.Fatalf("slow must be off when no threshold is set: %+v", ev)
		}
	}
}

func TestTracedSlowAndErrors(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	denied := errors.New("permission denied for table articles")

	q := traced{q: fakePgx{delay: 2 * time.Millisecond}, tracer: rec, slow: time.Millisecond}
	_, _ = q.Exec(ctx, "select pg_sleep(0.002)")
	if !rec.events[0].Slow || rec.events[0].Elapsed < time.Millisecond {
		t.Fatalf("event=%+v", rec.events[0])
	}

	q = traced{q: fakePgx{err: denied}, tracer: rec}
	if _, err := q.Query(ctx, "select * from articles"); !errors.Is(err, denied) {
		t.Fatalf("query err=%v", err)
	}
	if err := q.QueryRow(ctx, "select count(*) from articles").Scan(new(int64)); !errors.Is(err, denied) {
		t.Fatalf("scan err=%v", err)
	}
	if last := rec.events[len(rec.events)-1]; !errors.Is(last.Err, denied) {
		t.Fatalf("event=%+v", last)
	}

	// no tracer is fine
	if _, err := (traced{q: fakePgx{}}).Exec(ctx, "select 1"); err != nil {
		t.Fatalf("untraced exec: %v", err)
	}
}

package store

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// chStore adapts a native connection to the Clickhouse seam
type chStore struct{ conn driver.Conn }

func (c chStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (c chStore) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

func (c chStore) Close() error { return c.conn.Close() }

// chRows drops the Close error the driver reports; Err carries it
type chRows struct{ driver.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }

// Package repokit is what the SQL sources build their repos with: a repo bound
// to the Queryer of the current transaction, with hooks run before it
package repokit

import (
	"context"
	"fmt"

	"oilwatch/internal/platform/store"
)

type (
	// Queryer is the read and write surface a bound repo gets
	Queryer = store.RowQuerier

	// Reader is the query-only surface shared by the sql and clickhouse seams
	Reader = store.Querier

	// TxRunner can execute a function inside a transaction
	TxRunner = store.TxRunner
)

// Binder binds a repo to a specific Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds b to q. A nil q is a wiring bug and panics
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// BeginHook runs at the start of a transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks wraps inner so hooks run, in order, before fn inside the
// same transaction. The first failing hook aborts the transaction
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

type guarder interface {
	Guard(context.Context) error
}

// MustGuard runs st.Guard and panics on any error, for service startup
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}

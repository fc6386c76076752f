package errors

// Postgres-specific helpers for mapping pgx errors raised while reading the corpus table

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the corpus reader cares about
const (
	pgErrUndefinedTable        = "42P01"
	pgErrUndefinedColumn       = "42703"
	pgErrInsufficientPrivilege = "42501"
	pgErrInvalidCatalogName    = "3D000"
	pgErrCannotConnectNow      = "57P03" // i.e. startup in progress
	pgErrAdminShutdown         = "57P01"
	pgErrTooManyConnections    = "53300"
)

// pgCode maps a Postgres error to an ErrorCode; !ok means err was not a PgError
func pgCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUndefinedTable, pgErrUndefinedColumn, pgErrInsufficientPrivilege, pgErrInvalidCatalogName:
		// the operator pointed us at the wrong table or role
		return ErrorCodeConfig, true
	case pgErrCannotConnectNow, pgErrAdminShutdown, pgErrTooManyConnections:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeSource, true
}

// FromPostgresf wraps a pg error with a mapped ErrorCode. Timeouts and
// cancellation are Unavailable, anything unmapped is Source; nil stays nil
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, a...)
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	if code, ok := pgCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeSource, msg)
}

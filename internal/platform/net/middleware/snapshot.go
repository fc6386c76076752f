package middleware

import (
	"context"
	"net/http"

	"oilwatch/internal/platform/logger"
	pnet "oilwatch/internal/platform/net"
	phttp "oilwatch/internal/platform/net/http"
)

// SnapshotHeader carries the id of the corpus snapshot a response was built from
const SnapshotHeader = "X-Snapshot-ID"

// SnapshotPort pins the live corpus snapshot to a request
type SnapshotPort interface {
	// Pin resolves the live snapshot once and returns a context carrying it,
	// along with its id
	Pin(ctx context.Context) (context.Context, string, error)
}

// Snapshot pins one snapshot per request, so a reload mid-request cannot mix
// two snapshots in one response. The id goes on the response header and the
// request logger. Without a loaded corpus the request ends with the port's
// error envelope. A nil port passes through
func Snapshot(p SnapshotPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, id, err := p.Pin(r.Context())
			if err != nil {
				status, env := pnet.Fail(r.Context(), err)
				phttp.JSON(w, status, env)
				return
			}
			w.Header().Set(SnapshotHeader, id)
			next.ServeHTTP(w, r.WithContext(logger.WithSnapshot(ctx, id)))
		})
	}
}

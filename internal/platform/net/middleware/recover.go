package middleware

import (
	"net/http"
	"runtime/debug"

	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/logger"
	pnet "oilwatch/internal/platform/net"
	phttp "oilwatch/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 envelope with code panic and logs the
// stack with the request id. http.ErrAbortHandler is re-raised
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, env := pnet.Fail(r.Context(), perr.PanicErrf("internal error"))
			phttp.JSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}

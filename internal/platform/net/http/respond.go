package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "oilwatch/internal/platform/net"
	"oilwatch/internal/platform/net/http/bind"
)

// Envelope is the standard response body for all endpoints
type Envelope = pnet.Envelope

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Warner is implemented by handler results that carry recoverable input
// problems; they are lifted into the envelope's warnings
type Warner interface {
	Warnings() []string
}

// JSONHandler binds and validates the request body into T, then writes the
// handler result in the envelope
func JSONHandler[T any](fn func(*stdhttp.Request, T) (any, error)) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			write(w, r, nil, err)
			return
		}
		out, err := fn(r, in)
		write(w, r, out, err)
	}
}

// JSONHandlerNoBody calls fn without reading a request body
func JSONHandlerNoBody(fn func(*stdhttp.Request) (any, error)) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		out, err := fn(r)
		write(w, r, out, err)
	}
}

// write maps err to its status, otherwise replies 200 with out
func write(w stdhttp.ResponseWriter, r *stdhttp.Request, out any, err error) {
	if err != nil {
		status, env := pnet.Fail(r.Context(), err)
		JSON(w, status, env)
		return
	}
	var warnings []string
	if v, ok := out.(Warner); ok {
		warnings = v.Warnings()
	}
	status, env := pnet.Reply(r.Context(), out, warnings...)
	JSON(w, status, env)
}

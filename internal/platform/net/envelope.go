// Package net holds the reply envelope every oilwatch endpoint answers with,
// independent of the router that writes it
package net

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	perr "oilwatch/internal/platform/errors"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// RequestID returns the request id chi stored on ctx, "" when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Reply builds the 200 envelope for data. Warnings are recoverable input
// problems, e.g. an inverted year range or an unknown company name
func Reply(ctx context.Context, data any, warnings ...string) (int, Envelope) {
	env := Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  RequestID(ctx),
		Data:       data,
	}
	if len(warnings) > 0 {
		env.Warnings = warnings
	}
	return http.StatusOK, env
}

// Fail maps err to its status and an envelope carrying the error code and the
// client facing message. A nil err is a 200 with no data
func Fail(ctx context.Context, err error) (int, Envelope) {
	if err == nil {
		return Reply(ctx, nil)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  RequestID(ctx),
	}
}

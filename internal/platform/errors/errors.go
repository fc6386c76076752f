// Package errors is the structured error every oilwatch layer returns: a
// stable code for clients, a developer message, an optional field and cause.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error. Values go on the wire;
// append only
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodePanic                            // recovered by middleware
	ErrorCodeUnavailable                      // transient, a retry may succeed
	ErrorCodeInvalidArgument                  // well formed input that makes no sense
	ErrorCodeValidation                       // input failing its rules
	ErrorCodeJSON                             // body does not decode
	ErrorCodeNotFound                         // unknown dictionary or company
	ErrorCodeConfig                           // operator configuration, fatal at startup
	ErrorCodeSource                           // reading the article corpus failed
)

var codeInfo = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeConfig:          {"config", http.StatusInternalServerError},
	ErrorCodeSource:          {"source", http.StatusInternalServerError},
}

func (c ErrorCode) info() (string, int) {
	if int(c) >= len(codeInfo) {
		c = ErrorCodeUnknown
	}
	i := codeInfo[c]
	return i.name, i.status
}

// String is the name used in logs
func (c ErrorCode) String() string { n, _ := c.info(); return n }

// Status is the HTTP status the code answers with
func (c ErrorCode) Status() int { _, s := c.info(); return s }

// Error is the structured error type
type Error struct {
	code  ErrorCode
	msg   string
	field string
	orig  error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// Wire is the client facing part of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom reduces any error to its wire form. Foreign errors are Unknown
// and keep their text; nil is the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is the code of the first *Error in err's chain, Unknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the status any error answers with
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WithField returns a copy of err naming field. Foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap returns an *Error with code and msg caused by orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func codef(code ErrorCode) func(format string, a ...any) error {
	return func(format string, a ...any) error { return Newf(code, format, a...) }
}

// Shorthands for Newf with a fixed code
var (
	NotFoundf    = codef(ErrorCodeNotFound)
	InvalidArgf  = codef(ErrorCodeInvalidArgument)
	JSONErrf     = codef(ErrorCodeJSON)
	PanicErrf    = codef(ErrorCodePanic)
	Configf      = codef(ErrorCodeConfig)
	Sourcef      = codef(ErrorCodeSource)
	Unavailablef = codef(ErrorCodeUnavailable)
)

package engine

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a pipeline failure. Values are stable and surfaced to callers verbatim.
type ErrorKind string

const (
	KindEmptyInput                 ErrorKind = "empty_input"
	KindUnrecognizedFormat         ErrorKind = "unrecognized_format"
	KindChannelNotFound            ErrorKind = "channel_not_found"
	KindUpstreamUnavailable        ErrorKind = "upstream_unavailable"
	KindInvalidCPM                 ErrorKind = "invalid_cpm"
	KindInvalidMonetizationPercent ErrorKind = "invalid_monetization_percent"
	KindInvalidModel               ErrorKind = "invalid_model"

	// KindPartialDataDropped is never returned; the ranker counts it and moves on.
	KindPartialDataDropped ErrorKind = "partial_data_dropped"

	// KindInternal is reported for errors that did not come from the pipeline itself.
	KindInternal ErrorKind = "internal"
)

// Error is a typed pipeline failure.
type Error struct {
	Kind ErrorKind
	Op   string // stage that failed, e.g. "resolve", "channels.list"
	Err  error  // optional cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind, so errors.Is(err, &Error{Kind: K}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Fail builds an *Error. cause may be nil.
func Fail(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// KindOf returns the taxonomy kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatusError records a non-2xx response from the Data API.
type HTTPStatusError struct {
	StatusCode int
	Body       string // first bytes of the response body
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

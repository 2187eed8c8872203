package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeUpstream       = "upstream_error"
	CodeUnavailable    = "unavailable"
)

type Error struct {
	Status int
	Code   string
	// Message is the client-facing summary.
	Message string
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	e := &Error{Status: status, Code: code, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// Validation reports a missing or invalid request field.
func Validation(field, msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidRequest, fmt.Errorf("%s: %s", field, msg))
}

// Required is Validation for an absent field.
func Required(field string) *Error {
	return Validation(field, "is required")
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", what))
}

// Upstream wraps a failed store or completion-provider call. The cause is
// exposed as Details so callers can surface it.
func Upstream(msg string, cause error) *Error {
	e := New(http.StatusInternalServerError, CodeUpstream, errors.New(msg))
	if cause != nil {
		e.Details = cause.Error()
		e.Err = fmt.Errorf("%s: %w", msg, cause)
	}
	return e
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

// StatusOf maps any error to an HTTP status, defaulting to 500.
func StatusOf(err error) int {
	if ae, ok := As(err); ok && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

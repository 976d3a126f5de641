package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	CodeValidation      = "validation_error"
	CodeNotFound        = "not_found"
	CodeNotYetAvailable = "not_yet_available"
	CodeConflict        = "conflict"
	CodeUnauthorized    = "unauthorized"
	CodeInternal        = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error

	// AvailableOn is set for not_yet_available errors so callers can tell
	// the user when the rejected action becomes eligible.
	AvailableOn *time.Time
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
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func NotYetAvailable(availableOn time.Time, format string, args ...interface{}) *Error {
	e := New(http.StatusBadRequest, CodeNotYetAvailable, fmt.Errorf(format, args...))
	e.AvailableOn = &availableOn
	return e
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeConflict, fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From extracts a typed API error from an error chain, or nil.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

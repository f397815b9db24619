// Package apperrors defines the error taxonomy services return and handlers
// translate to HTTP: validation (400), not found (404), forbidden (403),
// stock conflicts (400) and internal failures (500).
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindStock
)

// Error carries a message key resolved against the locale catalogs at the
// handler boundary, plus optional formatting args (e.g. available/requested
// quantities for stock errors).
type Error struct {
	Kind    Kind
	Message string
	Args    []interface{}
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Args) > 0 {
		msg = fmt.Sprintf("%s %v", e.Message, e.Args)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status code. Insufficient-stock
// conflicts are reported as 400, matching the client contract.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindStock:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: message, Args: args}
}

func NotFound(message string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: message, Args: args}
}

func Forbidden(message string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: message, Args: args}
}

func Stock(message string, args ...interface{}) *Error {
	return &Error{Kind: KindStock, Message: message, Args: args}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	if appErr, ok := As(err); ok {
		return appErr.Kind == kind
	}
	return false
}

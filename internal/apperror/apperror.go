package apperror

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindBusinessRule
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindBusinessRule:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned by services. Message is safe to show to clients;
// Fields carries per-field validation messages; Err keeps the cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// BusinessRule is a 400 whose detail explains which rule was broken.
func BusinessRule(message, detail string) *Error {
	return &Error{Kind: KindBusinessRule, Message: message, Detail: detail}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidation, Fields: fields}
}

// Field is a validation failure on a single field.
func Field(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

// Unexpected wraps err with a stack and hides it behind message.
func Unexpected(err error, message string) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: errors.WithStack(err)}
}

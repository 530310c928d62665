// Package apperr defines the error kinds the API surfaces to clients.
// Services return these; handlers translate them to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound: a referenced entity id does not exist.
	KindNotFound Kind = iota
	// KindValidation: malformed or semantically invalid input.
	KindValidation
	// KindConflict: uniqueness or referential-guard violation.
	KindConflict
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindNotFound
}

func IsValidation(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindValidation
}

func IsConflict(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindConflict
}

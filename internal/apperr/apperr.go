package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindUnauthorized
	KindConflict
	KindModerationRejected
	KindService
)

// Error is an application error carrying the kind that decides
// which HTTP status a handler maps it to.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func ModerationRejected(message string) *Error {
	return New(KindModerationRejected, message)
}

func Service(message string, err error) *Error {
	return Wrap(KindService, message, err)
}

func Is(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// Status maps an error to the HTTP status its handler should return.
// Unknown errors are treated as downstream failures.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation, KindConflict, KindModerationRejected:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

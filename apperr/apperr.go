// Package apperr defines the error taxonomy surfaced to callers: BadRequest
// for malformed input and business-rule violations, NotFound for unresolved
// references, Conflict for uniqueness violations and protected seed rows.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	BadRequest Kind = iota + 1
	NotFound
	Conflict
)

func (k Kind) StatusCode() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "Bad request"
	case NotFound:
		return "Not found"
	case Conflict:
		return "Conflict"
	}
	return "Internal server error"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind of err, or 0 when err is not an *Error.
// Persistence-layer faults stay unclassified and propagate unchanged.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsBadRequest(err error) bool { return KindOf(err) == BadRequest }
func IsNotFound(err error) bool   { return KindOf(err) == NotFound }
func IsConflict(err error) bool   { return KindOf(err) == Conflict }

// MaskNoRows converts a sql.ErrNoRows into a NotFound with the given message,
// leaving any other error untouched.
func MaskNoRows(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return New(NotFound, message)
	}
	return err
}

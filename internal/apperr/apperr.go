// Package apperr defines the error taxonomy shared by services and the HTTP
// boundary. Services return an *Error with the status already decided; the
// central error handler only translates, never reclassifies.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindDuplicateKey     Kind = "duplicate_key"
	KindForeignKey       Kind = "foreign_key"
	KindValidation       Kind = "validation"
	KindPermissionDenied Kind = "permission_denied"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateKey:
		return http.StatusConflict
	case KindForeignKey, KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " no encontrado"}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func PermissionDenied(modulo, accion string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf("sin permiso de %s en %s", accion, modulo)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "error interno", Err: err}
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Package apperr carries the three business error kinds every service raises.
// Controllers map the kind to an HTTP status and the flat error envelope.
package apperr

import "errors"

type Kind string

const (
	KindNotFound      Kind = "NOT_FOUND"
	KindValidation    Kind = "VALIDATION"
	KindAlreadyExists Kind = "ALREADY_EXISTS"
)

type codedError struct {
	kind Kind
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() Kind    { return e.kind }

func NotFound(msg string) error      { return codedError{kind: KindNotFound, msg: msg} }
func Validation(msg string) error    { return codedError{kind: KindValidation, msg: msg} }
func AlreadyExists(msg string) error { return codedError{kind: KindAlreadyExists, msg: msg} }

// Code extracts the error kind, or "" for errors that are not business errors.
func Code(err error) Kind {
	var ce interface{ Code() Kind }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

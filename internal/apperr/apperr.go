// Package apperr defines the error taxonomy shared by all services. The HTTP
// layer maps kinds to status codes; services never construct transport errors.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInvalidInput marks a malformed or semantically illegal request.
	KindInvalidInput Kind = iota + 1
	// KindNotFound marks an absent entity, or access by a party the design
	// intentionally hides existence from.
	KindNotFound
	// KindForbidden marks an action reserved for another role.
	KindForbidden
	// KindConflict marks an attempted transition from a terminal state or a
	// uniqueness violation.
	KindConflict
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind carried by err, or zero when err is not an apperr.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

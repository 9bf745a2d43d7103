package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable business error code surfaced to clients.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindInvalidAmount   Kind = "INVALID_AMOUNT"
	KindTargetNotFound  Kind = "TARGET_NOT_FOUND"
	KindTargetNotActive Kind = "TARGET_NOT_ACTIVE"
	KindSelfOffer       Kind = "SELF_OFFER_NOT_ALLOWED"
	KindForbiddenOwner  Kind = "FORBIDDEN_OWNER"
	KindConflictState   Kind = "CONFLICT_STATE"
	KindAuthRequired    Kind = "AUTH_REQUIRED"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
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

// KindOf extracts the business kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

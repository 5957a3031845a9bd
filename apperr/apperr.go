package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error so callers can map it to a transport
// response without the service layer knowing about HTTP.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound - a referenced entity does not exist.
	KindNotFound
	// KindInvalidState - the entity exists but its current state forbids the
	// operation (inactive customer, unavailable product, non-cancellable order).
	KindInvalidState
	// KindInvalidTransition - the requested status change is not in the legal
	// transition table.
	KindInvalidTransition
	// KindInvalidArgument - malformed input, e.g. a non-positive quantity.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the service layer.
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

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func InvalidTransitionf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind carried by err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool          { return KindOf(err) == KindNotFound }
func IsInvalidState(err error) bool      { return KindOf(err) == KindInvalidState }
func IsInvalidTransition(err error) bool { return KindOf(err) == KindInvalidTransition }
func IsInvalidArgument(err error) bool   { return KindOf(err) == KindInvalidArgument }

package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation so callers can branch on the kind
// instead of matching message strings.
type ErrorKind int

const (
	// KindGateway covers backend call failures: network, backend-side
	// errors, malformed responses.
	KindGateway ErrorKind = iota
	// KindUnauthenticated means the operation requires a signed-in
	// identity and none is present.
	KindUnauthenticated
	// KindNotFound means the requested entity does not exist.
	KindNotFound
	// KindValidation means caller-supplied input failed a precondition.
	KindValidation
	// KindTimeout means a backend call exceeded its deadline.
	KindTimeout
	// KindExternalService means the recommendation service failed.
	KindExternalService
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	case KindExternalService:
		return "external_service"
	default:
		return "gateway"
	}
}

// Error is the closed error taxonomy for gateway and state operations.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a taxonomy error.
func E(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// IsKind reports whether err or anything it wraps is a taxonomy error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// UserMessage returns text safe to show: the taxonomy message without
// wrapped backend internals.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// Package ratmath provides exact-arithmetic rational numbers, rational
// intervals, Stern-Brocot/continued-fraction navigation, and an expression
// parser over a rich numeric literal grammar. No operation in this package
// introduces floating-point rounding into a stored value.
package ratmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind closes the error taxonomy a caller can branch on. It is never
// recovered locally inside the package: every failure is reported to the
// caller, never swallowed.
type ErrorKind int

const (
	// KindDomainError covers 0^0, zero to a negative power, even roots of a
	// negative value, LN/LOG of a non-positive value, ARCSIN/ARCCOS outside
	// [-1,1], and TAN at an odd multiple of pi/2.
	KindDomainError ErrorKind = iota
	// KindDivisionByZero covers a division whose divisor is exactly zero or
	// an interval divisor containing zero.
	KindDivisionByZero
	// KindInvalidLiteral covers structural violations of numeric syntax.
	KindInvalidLiteral
	// KindInvalidDigit covers a character outside the active base's digit map.
	KindInvalidDigit
	// KindBoundsExceeded covers a period/order search that exceeded its cap.
	KindBoundsExceeded
	// KindMultPowZero covers x ** 0.
	KindMultPowZero
	// KindTypeMismatch covers an argument category unacceptable for an operation.
	KindTypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindDomainError:
		return "DomainError"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindInvalidLiteral:
		return "InvalidLiteral"
	case KindInvalidDigit:
		return "InvalidDigit"
	case KindBoundsExceeded:
		return "BoundsExceeded"
	case KindMultPowZero:
		return "MultPowZero"
	case KindTypeMismatch:
		return "TypeMismatch"
	default:
		return "UnknownError"
	}
}

// RatError is the concrete error type returned by every fallible operation
// in this package. Use errors.As to recover it and Kind to branch on the
// taxonomy; the wrapped cause (if any) is reachable with errors.Cause or
// errors.Unwrap.
type RatError struct {
	kind  ErrorKind
	msg   string
	cause error
}

func newErr(kind ErrorKind, format string, args ...interface{}) *RatError {
	return &RatError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapErr(cause error, kind ErrorKind, format string, args ...interface{}) *RatError {
	return &RatError{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

func (e *RatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("ratmath: %s: %s: %v", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("ratmath: %s: %s", e.kind, e.msg)
}

// Kind reports which taxonomy bucket this error belongs to.
func (e *RatError) Kind() ErrorKind { return e.kind }

// Unwrap lets errors.Is/errors.As reach the wrapped cause, if any.
func (e *RatError) Unwrap() error { return e.cause }

// Cause satisfies github.com/pkg/errors's Causer interface so callers that
// walked in through pkg/errors.Wrap get the same underlying error back.
func (e *RatError) Cause() error { return e.cause }

// IsKind reports whether err is a *RatError of the given kind, unwrapping
// any pkg/errors wrapping applied along the way.
func IsKind(err error, kind ErrorKind) bool {
	var re *RatError
	if errors.As(err, &re) {
		return re.kind == kind
	}
	return false
}

var (
	// ErrDivisionByZero is the cause every exact-division-by-zero error
	// wraps; callers can recover it with errors.Is or Cause regardless of
	// which call site (Divide, Reciprocal, Modulo, a literal's denominator)
	// produced the specific message.
	ErrDivisionByZero = newErr(KindDivisionByZero, "division by zero")
)

// divisionByZero builds a KindDivisionByZero error with a call-site-specific
// message, wrapping ErrDivisionByZero as its cause.
func divisionByZero(format string, args ...interface{}) *RatError {
	return wrapErr(ErrDivisionByZero, KindDivisionByZero, format, args...)
}

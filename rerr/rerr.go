// Package rerr defines redipy's error taxonomy (SPEC_FULL.md §7): a
// closed set of kinds, realized as Go sentinel errors so callers can use
// errors.Is regardless of which backend produced the error or what its
// message text happens to be.
package rerr

import "errors"

// Kind is one of the taxonomy's closed set of error categories.
type Kind int

const (
	// KindTypeMismatch: operation applied to a key whose stored type is
	// incompatible (e.g. LPUSH on a string key).
	KindTypeMismatch Kind = iota
	// KindArityError: command or script call supplied the wrong
	// number/shape of arguments.
	KindArityError
	// KindParseError: script IR ill-formed at registration; JSON
	// invalid at the boundary.
	KindParseError
	// KindScriptError: user-originated error during script execution.
	KindScriptError
	// KindNotFound: referenced script hash unknown (NOSCRIPT); normally
	// handled internally by automatic re-EVAL, not surfaced.
	KindNotFound
	// KindConnectionError: external backend transport failure; always
	// surfaced.
	KindConnectionError
	// KindNotImplemented: called command not yet supported on a backend.
	KindNotImplemented
)

func (k Kind) String() string {
	switch k {
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindArityError:
		return "ArityError"
	case KindParseError:
		return "ParseError"
	case KindScriptError:
		return "ScriptError"
	case KindNotFound:
		return "NotFound"
	case KindConnectionError:
		return "ConnectionError"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with a message and an optional underlying cause,
// mirroring the teacher's "ERR "/"WRONGTYPE "-prefixed string-sentinel
// convention (internal/resp.Err / resp.ErrWrongType), but realized as a
// Go error type so errors.Is/errors.As work across backends.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e's Kind, so
// errors.Is(err, rerr.ErrTypeMismatch) works against a wrapped *Error.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*sentinelError)
	if !ok {
		return false
	}
	return sentinel.kind == e.Kind
}

type sentinelError struct{ kind Kind }

func (s *sentinelError) Error() string { return s.kind.String() }

var (
	ErrTypeMismatch    = &sentinelError{KindTypeMismatch}
	ErrArityError      = &sentinelError{KindArityError}
	ErrParseError      = &sentinelError{KindParseError}
	ErrScriptError     = &sentinelError{KindScriptError}
	ErrNotFound        = &sentinelError{KindNotFound}
	ErrConnectionError = &sentinelError{KindConnectionError}
	ErrNotImplemented  = &sentinelError{KindNotImplemented}
)

// New builds an *Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind, carrying cause as Unwrap's
// target so the original error is never lost.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// TypeMismatch is a convenience constructor for the single most common
// engine error.
func TypeMismatch() *Error {
	return New(KindTypeMismatch, "WRONGTYPE Operation against a key holding the wrong kind of value")
}

// ArityError builds an ArityError for a named command.
func ArityError(cmd string) *Error {
	return New(KindArityError, "wrong number of arguments for '"+cmd+"' command")
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error; ok is false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

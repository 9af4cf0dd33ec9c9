package engine

import (
	"errors"
	"fmt"
)

// ErrorCode enumerates the command-level rejections the engine reports. A
// CommandError never touches a cell: the command is rejected in full
// before any mutation, unlike a cell's own Error flag (see Cell.Error),
// which marks a value that a command legitimately installed but that
// fails to evaluate (e.g. division by zero).
type ErrorCode uint8

const (
	// ErrBadRef marks a cell reference outside the grid's bounds.
	ErrBadRef ErrorCode = iota
	// ErrBadSyntax marks a command that does not match the grammar.
	ErrBadSyntax
	// ErrBadRange marks a range whose bounds are inverted or malformed.
	ErrBadRange
	// ErrSelfReference marks a Range formula whose rectangle contains its own
	// target cell. A single-cell self-reference such as X = X reports ErrCycle.
	ErrSelfReference
	// ErrCycle marks any formula install that would close a dependency cycle.
	ErrCycle
	// ErrUnknownFunc marks an unrecognized range-function name.
	ErrUnknownFunc
	// ErrBadLiteral marks an integer literal that does not fit int32 or is malformed.
	ErrBadLiteral
)

func (c ErrorCode) String() string {
	switch c {
	case ErrBadRef:
		return "BadRef"
	case ErrBadSyntax:
		return "BadSyntax"
	case ErrBadRange:
		return "BadRange"
	case ErrSelfReference:
		return "SelfReference"
	case ErrCycle:
		return "Cycle"
	case ErrUnknownFunc:
		return "UnknownFunc"
	case ErrBadLiteral:
		return "BadLiteral"
	default:
		return "Unknown"
	}
}

// CommandError is the carrier for every command-level rejection. It is a
// plain struct formatted with stdlib fmt, with no third-party error-chain
// library: a stable code plus a human message is all a command-level
// rejection needs.
type CommandError struct {
	Code ErrorCode
	Msg  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// NewCommandError builds a CommandError. Exported so internal/command can
// report BadSyntax/BadRef/BadRange/UnknownFunc/BadLiteral with the same
// error taxonomy the engine uses for Cycle/SelfReference, so callers share
// one error vocabulary regardless of which layer rejected the command.
func NewCommandError(code ErrorCode, format string, args ...any) *CommandError {
	return &CommandError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func newCommandError(code ErrorCode, format string, args ...any) *CommandError {
	return NewCommandError(code, format, args...)
}

// AsCommandError reports whether err is (or wraps) a *CommandError.
func AsCommandError(err error) (*CommandError, bool) {
	var ce *CommandError
	ok := errors.As(err, &ce)
	return ce, ok
}

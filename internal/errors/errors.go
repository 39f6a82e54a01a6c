// Package errors provides sentinel errors and error types for the rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrNoPieceAtSource indicates the source square of a move is empty.
	ErrNoPieceAtSource = errors.New("no piece at source square")

	// ErrWrongTurn indicates the piece on the source square belongs to the
	// side not on move.
	ErrWrongTurn = errors.New("not this player's turn")

	// ErrNotInLegalSet indicates a move outside the legal move set: blocked
	// path, impossible geometry, or one that exposes the mover's king.
	ErrNotInLegalSet = errors.New("illegal move")

	// ErrGameAlreadyOver indicates a move submitted after a terminal status.
	ErrGameAlreadyOver = errors.New("game already over")

	// ErrNoHistory indicates an undo with no moves to take back.
	ErrNoHistory = errors.New("no move to undo")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates a malformed square name.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove indicates malformed move text.
	ErrInvalidMove = errors.New("invalid move text")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game identifier.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the server is at its live game limit.
	ErrTooManyGames = errors.New("too many games")

	// ErrSubscriberExists indicates a second connection for the same player.
	ErrSubscriberExists = errors.New("connection already exists")
)

// MoveError wraps a rejected move with its context. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err  error  // The underlying error
	Move string // The move text, e.g. "e2e4" (if known)
	Ply  int    // Ply number the move would have had (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a FEN or move-text error with position context.
type ParseError struct {
	Err    error  // The underlying error
	Input  string // The text being parsed
	Field  string // Which field failed (e.g. "castling")
	Column int    // 1-based column in Input (0 if unknown)
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Column > 0 {
		parts = append(parts, fmt.Sprintf("column %d", e.Column))
	}
	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.Input))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is, As and New re-export the standard helpers so callers importing this
// package under the name errors keep access to them.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

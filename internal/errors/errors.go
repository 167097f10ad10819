// Package errors provides sentinel errors and error types for chess-console.
// It defines the move classification failures and structured error types
// that preserve context while allowing inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFormat indicates move text that is not <file><rank><file><rank>[promo].
	ErrInvalidFormat = errors.New("invalid move format")

	// ErrInvalidSquare indicates a square outside a1-h8.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrNoPiece indicates there is no piece on the source square.
	ErrNoPiece = errors.New("no piece at source square")

	// ErrWrongTurn indicates the piece on the source square belongs to the side not on move.
	ErrWrongTurn = errors.New("not your piece")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrKingInCheck indicates a move that would leave the mover's king attacked.
	ErrKingInCheck = errors.New("move would leave king in check")

	// ErrGameOver indicates a move submitted after the game finished.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEngineNotRunning indicates a command sent to a stopped UCI engine.
	ErrEngineNotRunning = errors.New("engine not running")

	// ErrEngineTimeout indicates the UCI engine did not answer in time.
	ErrEngineTimeout = errors.New("engine timed out")

	// ErrNoBestMove indicates the UCI engine answered "bestmove (none)".
	ErrNoBestMove = errors.New("engine has no move")
)

// MoveError wraps errors with move context, including the ply number,
// the side to move and the move text. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	Ply      int    // 1-based ply number of the attempted move (0 if not applicable)
	Colour   string // Side that attempted the move (if known)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Colour != "" {
		parts = append(parts, e.Colour)
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	switch {
	case context == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", context, e.Err)
	case context == "":
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

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

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers need only one import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

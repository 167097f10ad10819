// Package engine implements the chess rules on top of the position model:
// attack detection, move legality, move execution, checkmate and stalemate
// detection, FEN import/export and move enumeration.
//
// Every function is a pure function of its arguments. A Position passed in is
// never modified; ApplyMove returns a new one.
package engine

import (
	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/errors"
)

// IsLegalMove returns true if the move is legal for the side to move.
// A promotion letter is not checked: it is accepted on any move and only
// used when a pawn reaches the last row.
func IsLegalMove(pos *chess.Position, m chess.Move) bool {
	return ValidateMove(pos, m) == nil
}

// ValidateMove checks the move like IsLegalMove and explains a rejection.
// The returned *errors.MoveError wraps ErrInvalidSquare, ErrNoPiece,
// ErrWrongTurn, ErrIllegalMove or ErrKingInCheck.
func ValidateMove(pos *chess.Position, m chess.Move) error {
	if err := validateMove(pos, m); err != nil {
		return &errors.MoveError{
			Err:      err,
			Ply:      pos.PlyCount() + 1,
			Colour:   pos.ToMove.String(),
			MoveText: m.String(),
		}
	}
	return nil
}

func validateMove(pos *chess.Position, m chess.Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return errors.ErrInvalidSquare
	}

	piece := pos.Get(m.From)
	if piece.IsEmpty() {
		return errors.ErrNoPiece
	}
	if piece.Colour != pos.ToMove {
		return errors.ErrWrongTurn
	}
	if pos.Get(m.To).Colour == piece.Colour {
		return errors.ErrIllegalMove
	}

	if !isPseudoLegal(pos, piece, m.From, m.To) {
		return errors.ErrIllegalMove
	}
	if leavesKingInCheck(pos, piece, m.From, m.To) {
		return errors.ErrKingInCheck
	}
	return nil
}

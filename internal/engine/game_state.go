package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

// IsCheckmate returns true if the side to move is in check and has no legal move.
func IsCheckmate(pos *chess.Position) bool {
	colour := pos.ToMove
	return IsKingInCheck(pos, colour) && !HasAnyLegalMove(pos, colour)
}

// IsStalemate returns true if the side to move is not in check and has no legal move.
func IsStalemate(pos *chess.Position) bool {
	colour := pos.ToMove
	return !IsKingInCheck(pos, colour) && !HasAnyLegalMove(pos, colour)
}

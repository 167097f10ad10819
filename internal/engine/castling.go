package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

const (
	kingStartCol      = 4
	kingsideRookCol   = chess.BoardSize - 1
	queensideRookCol  = 0
	kingsideKingCol   = 6
	queensideKingCol  = 2
	kingsideRookDest  = 5
	queensideRookDest = 3
)

// isCastlingMove reports whether a king move from→to is a two-column castle.
func isCastlingMove(moved chess.Piece, from, to chess.Square) bool {
	return moved.Type == chess.King && from.Row == to.Row && abs(to.Col-from.Col) == 2
}

// canCastle checks every castling condition for a king of the given colour
// moving from→to: the right is still held, the king and rook stand on their
// original squares, the squares between them are empty, and the king neither
// starts on, passes through, nor lands on an attacked square.
func canCastle(pos *chess.Position, colour chess.Colour, from, to chess.Square) bool {
	home := chess.HomeRow(colour)
	if from != chess.Sq(home, kingStartCol) || to.Row != home {
		return false
	}

	var kingside bool
	switch to.Col {
	case kingsideKingCol:
		kingside = true
	case queensideKingCol:
		kingside = false
	default:
		return false
	}

	if !pos.CanCastle(colour, kingside) {
		return false
	}

	rookCol := queensideRookCol
	if kingside {
		rookCol = kingsideRookCol
	}
	if !pos.Get(chess.Sq(home, rookCol)).Is(colour, chess.Rook) {
		return false
	}
	if !isPathClear(pos, from, chess.Sq(home, rookCol)) {
		return false
	}

	step := sign(to.Col - from.Col)
	opponent := colour.Opposite()
	for col := from.Col; col != to.Col+step; col += step {
		if IsSquareAttacked(pos, chess.Sq(home, col), opponent) {
			return false
		}
	}
	return true
}

// castleRookSquares returns the rook's origin and destination for a castling
// king move to the given square.
func castleRookSquares(kingTo chess.Square) (from, to chess.Square) {
	if kingTo.Col == kingsideKingCol {
		return chess.Sq(kingTo.Row, kingsideRookCol), chess.Sq(kingTo.Row, kingsideRookDest)
	}
	return chess.Sq(kingTo.Row, queensideRookCol), chess.Sq(kingTo.Row, queensideRookDest)
}

// updateCastlingRights removes castling rights when the king or a rook leaves
// its original square. A rook captured at home keeps the owner's right.
func updateCastlingRights(pos *chess.Position, moved chess.Piece, from chess.Square) {
	colour := moved.Colour
	switch moved.Type {
	case chess.King:
		pos.RevokeCastling(colour, true)
		pos.RevokeCastling(colour, false)
	case chess.Rook:
		if from.Row != chess.HomeRow(colour) {
			return
		}
		switch from.Col {
		case kingsideRookCol:
			pos.RevokeCastling(colour, true)
		case queensideRookCol:
			pos.RevokeCastling(colour, false)
		}
	}
}

package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

// canPawnMove checks the pawn movement rules: a single push onto an empty
// square, a double push from the start row through two empty squares, or a
// diagonal step onto an enemy piece or the en passant target.
func canPawnMove(pos *chess.Position, colour chess.Colour, from, to chess.Square) bool {
	dir := colour.Forward()
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	target := pos.Get(to)

	switch {
	case colDiff == 0 && rowDiff == dir:
		return target.IsEmpty()

	case colDiff == 0 && rowDiff == 2*dir:
		if from.Row != chess.PawnStartRow(colour) {
			return false
		}
		return pos.Get(from.Offset(dir, 0)).IsEmpty() && target.IsEmpty()

	case abs(colDiff) == 1 && rowDiff == dir:
		if !target.IsEmpty() {
			return target.Colour == colour.Opposite()
		}
		return isEnPassantTarget(pos, to)
	}

	return false
}

// isEnPassantTarget reports whether sq is the square the last double-pushed
// pawn skipped over.
func isEnPassantTarget(pos *chess.Position, sq chess.Square) bool {
	return pos.EnPassant && pos.EPSquare == sq
}

// enPassantVictim returns the square of the pawn captured by an en passant
// move to the given target: one row behind it from the mover's side.
func enPassantVictim(colour chess.Colour, target chess.Square) chess.Square {
	return target.Offset(-colour.Forward(), 0)
}

// isEnPassantCapture reports whether the pawn move from→to captures en passant.
func isEnPassantCapture(pos *chess.Position, moved chess.Piece, from, to chess.Square) bool {
	return moved.Type == chess.Pawn && from.Col != to.Col &&
		pos.Get(to).IsEmpty() && isEnPassantTarget(pos, to)
}

// isDoublePush reports whether a pawn move from→to advances two rows.
func isDoublePush(moved chess.Piece, from, to chess.Square) bool {
	return moved.Type == chess.Pawn && abs(to.Row-from.Row) == 2
}

// promotionPiece returns the piece type a pawn arriving on the last row turns
// into. A missing or unusable letter promotes to a queen.
func promotionPiece(requested chess.PieceType) chess.PieceType {
	switch requested {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return requested
	default:
		return chess.Queen
	}
}

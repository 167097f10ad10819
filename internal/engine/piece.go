package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

// isPseudoLegal checks the movement rules of the piece on from, without
// regard to the safety of the mover's king. The caller has already checked
// that the piece belongs to the side to move and that the destination does
// not hold one of its own pieces.
func isPseudoLegal(pos *chess.Position, piece chess.Piece, from, to chess.Square) bool {
	switch piece.Type {
	case chess.Pawn:
		return canPawnMove(pos, piece.Colour, from, to)

	case chess.King:
		if isCastlingMove(piece, from, to) {
			return canCastle(pos, piece.Colour, from, to)
		}
		return canPieceMove(pos, chess.King, from, to)

	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		return canPieceMove(pos, piece.Type, from, to)
	}

	return false
}

// leavesKingInCheck plays from→to on a scratch copy of the position and
// reports whether the mover's king is attacked afterwards. Only the squares
// are touched: the moving piece is relocated and an en passant victim is
// removed.
func leavesKingInCheck(pos *chess.Position, piece chess.Piece, from, to chess.Square) bool {
	scratch := *pos
	scratch.History = nil

	if isEnPassantCapture(pos, piece, from, to) {
		scratch.Clear(enPassantVictim(piece.Colour, to))
	}
	scratch.Clear(from)
	scratch.Set(to, piece)

	return IsKingInCheck(&scratch, piece.Colour)
}

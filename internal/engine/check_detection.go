package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

var (
	knightOffsets   = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs    = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	pawnCaptureCols = []int{-1, 1}
)

// IsKingInCheck returns true if the given colour's king is attacked by the
// opponent. A position without that king is never in check.
func IsKingInCheck(pos *chess.Position, colour chess.Colour) bool {
	kingSq, ok := pos.FindKing(colour)
	if !ok {
		return false
	}
	return IsSquareAttacked(pos, kingSq, colour.Opposite())
}

// IsSquareAttacked returns true if at least one piece of the given colour
// attacks sq. Attacks are pseudo-legal: an attacker pinned to its own king
// still attacks.
func IsSquareAttacked(pos *chess.Position, sq chess.Square, by chess.Colour) bool {
	if !sq.Valid() {
		return false
	}

	// A pawn attacks diagonally forward, so look one row behind sq.
	pawnRow := sq.Row - by.Forward()
	for _, dc := range pawnCaptureCols {
		if pos.Get(chess.Sq(pawnRow, sq.Col+dc)).Is(by, chess.Pawn) {
			return true
		}
	}

	for _, off := range knightOffsets {
		if pos.Get(sq.Offset(off[0], off[1])).Is(by, chess.Knight) {
			return true
		}
	}

	for _, off := range kingOffsets {
		if pos.Get(sq.Offset(off[0], off[1])).Is(by, chess.King) {
			return true
		}
	}

	if slidingAttack(pos, sq, by, diagonalDirs, chess.Bishop) {
		return true
	}
	return slidingAttack(pos, sq, by, straightDirs, chess.Rook)
}

// slidingAttack walks each direction from sq until the first occupied square
// and reports whether it holds a slider of the given type or a queen.
func slidingAttack(pos *chess.Position, sq chess.Square, by chess.Colour, dirs [][2]int, slider chess.PieceType) bool {
	for _, dir := range dirs {
		cur := sq.Offset(dir[0], dir[1])
		for cur.Valid() {
			piece := pos.Get(cur)
			if !piece.IsEmpty() {
				if piece.Is(by, slider) || piece.Is(by, chess.Queen) {
					return true
				}
				break // Blocked
			}
			cur = cur.Offset(dir[0], dir[1])
		}
	}
	return false
}

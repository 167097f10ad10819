package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

// canPieceMove checks the movement shape of a knight, bishop, rook, queen or
// king (single step only) from one square to another, including that every
// square strictly between them is empty for the sliding pieces.
func canPieceMove(pos *chess.Position, pieceType chess.PieceType, from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	if rowDiff == 0 && colDiff == 0 {
		return false
	}

	switch pieceType {
	case chess.Knight:
		return (colDiff == 1 && rowDiff == 2) || (colDiff == 2 && rowDiff == 1)

	case chess.Bishop:
		if colDiff != rowDiff {
			return false
		}
		return isPathClear(pos, from, to)

	case chess.Rook:
		if colDiff != 0 && rowDiff != 0 {
			return false
		}
		return isPathClear(pos, from, to)

	case chess.Queen:
		if colDiff != rowDiff && colDiff != 0 && rowDiff != 0 {
			return false
		}
		return isPathClear(pos, from, to)

	case chess.King:
		return colDiff <= 1 && rowDiff <= 1
	}

	return false
}

// isPathClear checks that every square on the straight or diagonal line
// between from and to, exclusive of both ends, is empty.
func isPathClear(pos *chess.Position, from, to chess.Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	cur := from.Offset(rowDir, colDir)
	for cur != to {
		if !cur.Valid() || !pos.Get(cur).IsEmpty() {
			return false
		}
		cur = cur.Offset(rowDir, colDir)
	}

	return true
}

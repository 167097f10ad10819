package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-console-go/internal/chess"
)

// PositionFromDiagram builds a position from eight diagram rows, rank 8
// first. Each row holds eight FEN piece letters, with '.' for an empty
// square; spaces are ignored. The result has White to move, no castling
// rights and no en passant target.
func PositionFromDiagram(t *testing.T, rows ...string) *chess.Position {
	t.Helper()
	if len(rows) != chess.BoardSize {
		t.Fatalf("diagram has %d rows, want %d", len(rows), chess.BoardSize)
	}

	pos := chess.NewPosition()
	for row, text := range rows {
		text = strings.ReplaceAll(text, " ", "")
		if len(text) != chess.BoardSize {
			t.Fatalf("diagram row %d %q has %d squares, want %d", row, text, len(text), chess.BoardSize)
		}
		for col := 0; col < chess.BoardSize; col++ {
			c := text[col]
			if c == '.' {
				continue
			}
			pieceType := chess.PieceTypeFromLetter(c)
			if pieceType == chess.None {
				t.Fatalf("diagram row %d: unknown piece %q", row, c)
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			pos.Set(chess.Sq(row, col), chess.MakePiece(colour, pieceType))
		}
	}
	return pos
}

// Diagram renders the squares of a position as eight rows in the format
// accepted by PositionFromDiagram.
func Diagram(pos *chess.Position) []string {
	rows := make([]string, chess.BoardSize)
	for row := 0; row < chess.BoardSize; row++ {
		var sb strings.Builder
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(pos.Squares[row][col].FENLetter())
		}
		rows[row] = sb.String()
	}
	return rows
}

// MustParseMove parses UCI move text and calls t.Fatal on failure.
func MustParseMove(t *testing.T, text string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(text)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", text, err)
	}
	return m
}

// MustParseMoves parses each UCI move text and calls t.Fatal on the first failure.
func MustParseMoves(t *testing.T, texts ...string) []chess.Move {
	t.Helper()
	moves := make([]chess.Move, len(texts))
	for i, text := range texts {
		moves[i] = MustParseMove(t, text)
	}
	return moves
}

package engine

import (
	"testing"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/testutil"
)

func mustFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	pos, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q) error: %v", fen, err)
	}
	return pos
}

// play applies each move after checking that it is legal.
func play(t *testing.T, pos *chess.Position, moves ...string) *chess.Position {
	t.Helper()
	for _, text := range moves {
		m := testutil.MustParseMove(t, text)
		if err := ValidateMove(pos, m); err != nil {
			t.Fatalf("ValidateMove(%s) in %s: %v", text, ToFEN(pos), err)
		}
		pos, _ = ApplyMove(pos, m)
	}
	return pos
}

func legal(t *testing.T, pos *chess.Position, text string) bool {
	t.Helper()
	return IsLegalMove(pos, testutil.MustParseMove(t, text))
}

func sq(text string) chess.Square {
	return chess.MustParseSquare(text)
}

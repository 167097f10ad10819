package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/chess-console-go/internal/chess"
)

// These tests verify the assertion helpers work correctly.
// Since we can't mock *testing.T, we test success cases directly
// and test the formatMessage helper which is internally testable.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "e2e4", "e2e4")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []string{"e2e4", "d2d4"}, []string{"e2e4", "d2d4"})
	AssertEqual(t, chess.W(chess.King), chess.W(chess.King), "piece")
	AssertEqual(t, nil, nil)
}

func TestAssertSameElements_Success(t *testing.T) {
	AssertSameElements(t, []string{"g1f3", "e2e4"}, []string{"e2e4", "g1f3"})
	AssertSameElements(t, nil, []string{})
}

func TestAssertErrorIs_Success(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	AssertErrorIs(t, nil, nil)
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "operation should succeed")
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "bestmove e2e4", "e2e4")
	AssertContains(t, "test", "")
}

func TestAssertTrueFalse_Success(t *testing.T) {
	AssertTrue(t, true)
	AssertTrue(t, len("e2e4") == 4)
	AssertFalse(t, false)
	AssertFalse(t, len("e2e4") == 5)
}

func TestAssertNil_Success(t *testing.T) {
	var p *chess.Position
	AssertNil(t, p)
	AssertNil(t, nil)
	AssertNotNil(t, chess.NewPosition())
	AssertNotNil(t, []int{1})
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"empty args", []interface{}{}, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"move %s", "e2e4"}, "move e2e4"},
		{"format multiple", []interface{}{"%s %d %s", "ply", 3, "end"}, "ply 3 end"},
		{"non-string format", []interface{}{7, "ignored"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestPositionFromDiagram(t *testing.T) {
	pos := PositionFromDiagram(t,
		"r...k..r",
		"........",
		"........",
		"...pP...",
		"........",
		"........",
		"........",
		"R...K..R",
	)

	AssertEqual(t, pos.Get(chess.MustParseSquare("a8")), chess.B(chess.Rook))
	AssertEqual(t, pos.Get(chess.MustParseSquare("e1")), chess.W(chess.King))
	AssertEqual(t, pos.Get(chess.MustParseSquare("d5")), chess.B(chess.Pawn))
	AssertEqual(t, pos.Get(chess.MustParseSquare("e5")), chess.W(chess.Pawn))
	AssertTrue(t, pos.Get(chess.MustParseSquare("e4")).IsEmpty())
	AssertEqual(t, pos.ToMove, chess.White)
	AssertFalse(t, pos.WhiteKingside)
}

func TestDiagramRoundTrip(t *testing.T) {
	rows := Diagram(chess.InitialPosition())
	AssertEqual(t, rows[0], "rnbqkbnr")
	AssertEqual(t, rows[4], "........")
	AssertEqual(t, rows[7], "RNBQKBNR")
	AssertEqual(t, Diagram(PositionFromDiagram(t, rows...)), rows)
}

func TestMustParseMoves(t *testing.T) {
	moves := MustParseMoves(t, "e2e4", "e7e8q")
	AssertEqual(t, len(moves), 2)
	AssertEqual(t, moves[1].Promotion, chess.Queen)
}

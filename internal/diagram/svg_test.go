package diagram

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/engine"
	"github.com/lgbarn/chess-console-go/internal/errors"
	"github.com/lgbarn/chess-console-go/internal/testutil"
)

func render(t *testing.T, pos *chess.Position, size int, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteSVG(&buf, pos, size, opts...); err != nil {
		t.Fatalf("WriteSVG() error: %v", err)
	}
	return buf.String()
}

func TestWriteSVG_InitialPosition(t *testing.T) {
	out := render(t, chess.InitialPosition(), 480)

	testutil.AssertContains(t, out, `<svg`)
	testutil.AssertContains(t, out, `width="480"`)
	testutil.AssertContains(t, out, "</svg>")
	testutil.AssertContains(t, out, "<title>"+engine.InitialFEN+"</title>")

	// One frame plus 64 squares.
	testutil.AssertEqual(t, strings.Count(out, "<rect "), 65)
	testutil.AssertEqual(t, strings.Count(out, lightSquare), 32)
	testutil.AssertEqual(t, strings.Count(out, darkSquare), 32)

	testutil.AssertEqual(t, strings.Count(out, "♙"), 8)
	testutil.AssertEqual(t, strings.Count(out, "♟"), 8)
	testutil.AssertEqual(t, strings.Count(out, "♔"), 1)
	testutil.AssertEqual(t, strings.Count(out, "♛"), 1)

	for _, label := range []string{">a<", ">h<", ">1<", ">8<"} {
		testutil.AssertContains(t, out, label)
	}
}

// glyphAt returns the text drawn at (x, y), or "" if nothing is.
func glyphAt(out string, x, y int) string {
	start := strings.Index(out, fmt.Sprintf(`<text x="%d" y="%d"`, x, y))
	if start < 0 {
		return ""
	}
	rest := out[start:]
	open := strings.Index(rest, ">")
	end := strings.Index(rest, "</text>")
	return rest[open+1 : end]
}

func TestWriteSVG_Layout(t *testing.T) {
	// size 480: margin 30, squares 52. a8 is top left, h1 bottom right.
	out := render(t, chess.InitialPosition(), 480)
	testutil.AssertContains(t, out, `<rect x="30" y="30" width="52" height="52" style="fill:`+lightSquare+`"`)
	testutil.AssertContains(t, out, `<rect x="394" y="394" width="52" height="52" style="fill:`+lightSquare+`"`)
	testutil.AssertContains(t, out, `<rect x="82" y="30" width="52" height="52" style="fill:`+darkSquare+`"`)
	testutil.AssertEqual(t, glyphAt(out, 56, 56), "♜")
	testutil.AssertEqual(t, glyphAt(out, 264, 420), "♔")
	testutil.AssertEqual(t, glyphAt(out, 56, 264), "")

	flipped := render(t, chess.InitialPosition(), 480, Flipped())
	testutil.AssertEqual(t, glyphAt(flipped, 56, 56), "♖")
	testutil.AssertEqual(t, glyphAt(flipped, 212, 56), "♔")
	testutil.AssertEqual(t, glyphAt(flipped, 420, 420), "♜")
}

func TestWriteSVG_HighlightsLastMove(t *testing.T) {
	pos, err := engine.PlayMoves(chess.InitialPosition(), "g1f3")
	testutil.AssertNoError(t, err)

	out := render(t, pos, 320)
	// g1 is dark, f3 is light.
	testutil.AssertEqual(t, strings.Count(out, lightMoved), 1)
	testutil.AssertEqual(t, strings.Count(out, darkMoved), 1)
	testutil.AssertEqual(t, strings.Count(out, lightSquare), 31)
	testutil.AssertEqual(t, strings.Count(out, darkSquare), 31)

	plain := render(t, pos, 320, NoHighlight())
	testutil.AssertFalse(t, strings.Contains(plain, lightMoved))
	testutil.AssertFalse(t, strings.Contains(plain, darkMoved))
}

func TestWriteSVG_EmptyBoard(t *testing.T) {
	pos := engine.MustFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	out := render(t, pos, 240)

	testutil.AssertEqual(t, strings.Count(out, "♔"), 1)
	testutil.AssertEqual(t, strings.Count(out, "♚"), 1)
	testutil.AssertEqual(t, strings.Count(out, "♙"), 0)
}

func TestWriteSVG_BadSize(t *testing.T) {
	for _, size := range []int{0, 100, 5000} {
		err := WriteSVG(&bytes.Buffer{}, chess.InitialPosition(), size)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig, "size %d", size)
	}
}

type failingWriter struct{ after int }

var errDiskFull = stderrors.New("disk full")

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errDiskFull
	}
	f.after--
	return len(p), nil
}

func TestWriteSVG_WriteError(t *testing.T) {
	err := WriteSVG(&failingWriter{after: 3}, chess.InitialPosition(), 480)
	testutil.AssertErrorIs(t, err, errDiskFull)
}

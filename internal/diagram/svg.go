// Package diagram draws chess positions as SVG images.
package diagram

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/config"
	"github.com/lgbarn/chess-console-go/internal/engine"
	"github.com/lgbarn/chess-console-go/internal/errors"
)

// Board colours.
const (
	lightSquare = "#f0d9b5"
	darkSquare  = "#b58863"
	lightMoved  = "#cdd26a"
	darkMoved   = "#aaa23a"
	frame       = "#312e2b"
	labelColour = "#e8e6e3"
)

var glyphs = map[chess.PieceType][2]string{
	chess.King:   {"♔", "♚"},
	chess.Queen:  {"♕", "♛"},
	chess.Rook:   {"♖", "♜"},
	chess.Bishop: {"♗", "♝"},
	chess.Knight: {"♘", "♞"},
	chess.Pawn:   {"♙", "♟"},
}

type options struct {
	flipped   bool
	highlight bool
}

// Option adjusts how a diagram is drawn.
type Option func(*options)

// Flipped draws the board from Black's side.
func Flipped() Option {
	return func(o *options) { o.flipped = true }
}

// NoHighlight leaves the last move's squares in their normal colours.
func NoHighlight() Option {
	return func(o *options) { o.highlight = false }
}

// errWriter remembers the first write error so drawing can carry on
// unchecked; svgo does not report errors itself.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, nil
}

// WriteSVG draws pos as a size×size SVG with file and rank labels in a frame
// around the board. The squares of the last move are highlighted.
func WriteSVG(w io.Writer, pos *chess.Position, size int, opts ...Option) error {
	if size < config.MinDiagramSize || size > config.MaxDiagramSize {
		return errors.Wrapf(errors.ErrInvalidConfig, "diagram size %d", size)
	}
	o := options{highlight: true}
	for _, opt := range opts {
		opt(&o)
	}

	margin := size / 16
	square := (size - 2*margin) / chess.BoardSize
	board := square * chess.BoardSize

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(size, size)
	canvas.Title(engine.ToFEN(pos))
	canvas.Rect(0, 0, size, size, "fill:"+frame)

	var moved map[chess.Square]bool
	if last, ok := pos.LastMove(); ok && o.highlight {
		moved = map[chess.Square]bool{last.From: true, last.To: true}
	}

	// screen maps a board row or column to its position on screen.
	screen := func(i int) int {
		if o.flipped {
			i = chess.BoardSize - 1 - i
		}
		return margin + i*square
	}

	canvas.Gid("squares")
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			canvas.Rect(screen(col), screen(row), square, square, "fill:"+squareColour(chess.Sq(row, col), moved))
		}
	}
	canvas.Gend()

	pieceStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", square*4/5)
	canvas.Gid("pieces")
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := pos.Squares[row][col]
			if p.IsEmpty() {
				continue
			}
			glyph := glyphs[p.Type][0]
			if p.Colour == chess.Black {
				glyph = glyphs[p.Type][1]
			}
			canvas.Text(screen(col)+square/2, screen(row)+square/2, glyph, pieceStyle)
		}
	}
	canvas.Gend()

	labelStyle := fmt.Sprintf("font-size:%dpx;font-family:sans-serif;text-anchor:middle;dominant-baseline:central;fill:%s", margin*2/3, labelColour)
	canvas.Gid("coordinates")
	for i := 0; i < chess.BoardSize; i++ {
		file := string(rune(chess.FirstFile + i))
		rank := string(rune(chess.LastRank - i))
		canvas.Text(screen(i)+square/2, margin+board+margin/2, file, labelStyle)
		canvas.Text(margin/2, screen(i)+square/2, rank, labelStyle)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func squareColour(sq chess.Square, moved map[chess.Square]bool) string {
	light := (sq.Row+sq.Col)%2 == 0
	switch {
	case moved[sq] && light:
		return lightMoved
	case moved[sq]:
		return darkMoved
	case light:
		return lightSquare
	}
	return darkSquare
}

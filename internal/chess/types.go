// Package chess provides the core chess types: squares, pieces, moves and positions.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-console-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	NoColour Colour = iota
	White
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// Opposite returns the opposite colour. NoColour has no opposite.
func (c Colour) Opposite() Colour {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColour
	}
}

// Forward returns the row delta of a pawn advance: White moves towards row 0.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PieceType represents the kind of a chess piece.
type PieceType int

const (
	None PieceType = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (t PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if t >= 0 && int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// PieceTypeFromLetter converts a piece letter in either case to a piece type.
// Unknown letters return None.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return None
	}
}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Type   PieceType
	Colour Colour
}

// NoPiece is the content of an empty square.
var NoPiece = Piece{Type: None, Colour: NoColour}

// MakePiece creates a coloured piece. A None type always yields NoPiece so
// that an empty square never carries a colour.
func MakePiece(colour Colour, t PieceType) Piece {
	if t == None || colour == NoColour {
		return NoPiece
	}
	return Piece{Type: t, Colour: colour}
}

// W creates a white piece.
func W(t PieceType) Piece {
	return MakePiece(White, t)
}

// B creates a black piece.
func B(t PieceType) Piece {
	return MakePiece(Black, t)
}

// IsEmpty returns true if the piece represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Type == None
}

// Is returns true if the piece has the given colour and type.
func (p Piece) Is(colour Colour, t PieceType) bool {
	return p.Colour == colour && p.Type == t
}

// FENLetter returns the FEN letter of the piece: uppercase for White,
// lowercase for Black and '.' for an empty square.
func (p Piece) FENLetter() byte {
	if p.IsEmpty() {
		return '.'
	}
	letter := p.Type.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String returns a readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstFile = 'a'
	LastFile  = FirstFile + BoardSize - 1
	FirstRank = '1'
	LastRank  = FirstRank + BoardSize - 1
)

// Square is a board coordinate. Row 0 is rank 8 (Black's back rank) and
// row 7 is rank 1; column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// Sq builds a square from row and column indices.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid returns true if both indices are on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// File returns the file letter of the square ('a'-'h').
func (s Square) File() byte {
	return byte(FirstFile + s.Col)
}

// Rank returns the rank digit of the square ('1'-'8').
func (s Square) Rank() byte {
	return byte(LastRank - s.Row)
}

// String returns the algebraic notation of the square, or "??" if it is off the board.
func (s Square) String() string {
	if !s.Valid() {
		return "??"
	}
	return string([]byte{s.File(), s.Rank()})
}

// Offset returns the square displaced by the given row and column deltas.
// The result may be off the board.
func (s Square) Offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// ParseSquare converts algebraic notation ("e4") to a square.
// Upper-case files are accepted.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	file, rank := text[0], text[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < FirstFile || file > LastFile || rank < FirstRank || rank > LastRank {
		return Square{}, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	return Square{Row: int(LastRank - rank), Col: int(file - FirstFile)}, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

// HomeRow returns the back-rank row of the given colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// PawnStartRow returns the row a pawn of the given colour starts on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return BoardSize - 2
	}
	return 1
}

// PromotionRow returns the row on which a pawn of the given colour promotes.
func PromotionRow(colour Colour) int {
	return HomeRow(colour.Opposite())
}

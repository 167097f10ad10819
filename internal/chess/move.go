package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-console-go/internal/errors"
)

// Move is a candidate move in coordinate form. Promotion is None unless the
// move text carried a promotion letter.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NewMove creates a move without a promotion piece.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the UCI coordinate text of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != None {
		s += string(rune(m.Promotion.Letter() + 'a' - 'A'))
	}
	return s
}

// ParseMove converts UCI coordinate text (<file><rank><file><rank>[promo])
// into a Move. Surrounding whitespace is ignored, files and the promotion
// letter may be given in either case.
func ParseMove(text string) (Move, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("move %q: expected 4 or 5 characters: %w", text, errors.ErrInvalidFormat)
	}

	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", text, errors.ErrInvalidFormat)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", text, errors.ErrInvalidFormat)
	}

	move := Move{From: from, To: to}
	if len(text) == 5 {
		promo := PieceTypeFromLetter(text[4])
		switch promo {
		case Queen, Rook, Bishop, Knight:
			move.Promotion = promo
		default:
			return Move{}, fmt.Errorf("move %q: unknown promotion piece %q: %w", text, text[4], errors.ErrInvalidFormat)
		}
	}
	return move, nil
}

// MoveRecord is the immutable record of an executed move.
type MoveRecord struct {
	// The move text in UCI coordinate form.
	Notation string

	// The piece that moved, as it was before the move.
	Moved Piece

	// The piece captured (NoPiece if none). For en passant this is the
	// pawn removed from beside the destination.
	Captured Piece

	// Source and destination squares.
	From Square
	To   Square

	IsCastle    bool
	IsEnPassant bool
	IsPromotion bool

	// The piece promoted to (None if not a promotion).
	PromotedTo PieceType
}

// IsCapture returns true if the move captured a piece.
func (r MoveRecord) IsCapture() bool {
	return !r.Captured.IsEmpty()
}

// Describe returns the notation followed by annotations for castling,
// en passant, promotion and captures, as shown in a move list.
func (r MoveRecord) Describe() string {
	var sb strings.Builder
	sb.WriteString(r.Notation)
	if r.IsCastle {
		sb.WriteString(" (castle)")
	}
	if r.IsEnPassant {
		sb.WriteString(" (e.p.)")
	}
	if r.IsPromotion {
		fmt.Fprintf(&sb, " (=%c)", r.PromotedTo.Letter())
	}
	if r.IsCapture() {
		fmt.Fprintf(&sb, " x%c", r.Captured.FENLetter())
	}
	return sb.String()
}

package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN creates a position from a FEN string. The placement and side to
// move fields are required; missing castling, en passant and clock fields
// default to "-", "-", 0 and 1. The position must hold exactly one king of
// each colour.
func FromFEN(fen string) (*chess.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("FEN %q: need at least placement and side to move: %w", fen, errors.ErrInvalidFEN)
	}
	if len(parts) > 6 {
		return nil, fmt.Errorf("FEN %q: too many fields: %w", fen, errors.ErrInvalidFEN)
	}

	pos := chess.NewPosition()

	if err := parsePiecePositions(pos, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(pos, parts[1]); err != nil {
		return nil, err
	}
	if len(parts) > 2 {
		if err := parseCastlingRights(pos, parts[2]); err != nil {
			return nil, err
		}
	}
	if len(parts) > 3 {
		if err := parseEnPassant(pos, parts[3]); err != nil {
			return nil, err
		}
	}
	if len(parts) > 4 {
		if err := parseClocks(pos, parts[4:]); err != nil {
			return nil, err
		}
	}

	return pos, nil
}

// MustFromFEN is like FromFEN but panics on a malformed string.
// It is intended for constants and tests.
func MustFromFEN(fen string) *chess.Position {
	pos, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(pos *chess.Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("placement %q: expected %d ranks: %w", placement, chess.BoardSize, errors.ErrInvalidFEN)
	}

	kings := map[chess.Colour]int{}
	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			default:
				pieceType := chess.PieceTypeFromLetter(byte(c))
				if pieceType == chess.None {
					return fmt.Errorf("invalid piece character %q: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				if pieceType == chess.King {
					kings[colour]++
				}
				pos.Set(chess.Sq(row, col), chess.MakePiece(colour, pieceType))
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}

	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("need one king per side, got %d white and %d black: %w",
			kings[chess.White], kings[chess.Black], errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *chess.Position, field string) error {
	switch field {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move %q: %w", field, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(pos *chess.Position, field string) error {
	if field == "-" {
		return nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			pos.WhiteKingside = true
		case 'Q':
			pos.WhiteQueenside = true
		case 'k':
			pos.BlackKingside = true
		case 'q':
			pos.BlackQueenside = true
		default:
			return fmt.Errorf("invalid castling field %q: %w", field, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The target must
// lie on the row a double-pushed pawn of the side not to move skips over.
func parseEnPassant(pos *chess.Position, field string) error {
	if field == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return fmt.Errorf("en passant square: %v: %w", err, errors.ErrInvalidFEN)
	}
	pusher := pos.ToMove.Opposite()
	if sq.Row != chess.PawnStartRow(pusher)+pusher.Forward() {
		return fmt.Errorf("en passant square %s on wrong rank: %w", field, errors.ErrInvalidFEN)
	}
	pos.EnPassant = true
	pos.EPSquare = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *chess.Position, fields []string) error {
	if len(fields) > 0 {
		n, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("halfmove clock %q: %w", fields[0], errors.ErrInvalidFEN)
		}
		pos.HalfmoveClock = uint(n)
	}
	if len(fields) > 1 {
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("fullmove number %q: %w", fields[1], errors.ErrInvalidFEN)
		}
		pos.MoveNumber = uint(n)
	}
	return nil
}

// ToFEN converts a position to a six-field FEN string.
func ToFEN(pos *chess.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, pos)
	sb.WriteByte(' ')
	writeSideToMove(&sb, pos)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos)
	sb.WriteByte(' ')
	writeEnPassant(&sb, pos)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", pos.HalfmoveClock, pos.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement, rank 8 first.
func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := pos.Squares[row][col]
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, pos *chess.Position) {
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, pos *chess.Position) {
	start := sb.Len()
	if pos.WhiteKingside {
		sb.WriteByte('K')
	}
	if pos.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if pos.BlackKingside {
		sb.WriteByte('k')
	}
	if pos.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, pos *chess.Position) {
	if pos.EnPassant {
		sb.WriteString(pos.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
}

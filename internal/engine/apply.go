package engine

import (
	"github.com/lgbarn/chess-console-go/internal/chess"
)

// ApplyMove plays a move and returns the resulting position together with
// the record appended to its history. The input position is left untouched.
//
// The move must be legal in pos (see IsLegalMove). ApplyMove does not check
// this; playing an illegal move gives an undefined position.
func ApplyMove(pos *chess.Position, m chess.Move) (*chess.Position, chess.MoveRecord) {
	next := pos.Copy()
	colour := pos.ToMove
	moved := pos.Get(m.From)

	record := chess.MoveRecord{
		Notation: m.String(),
		Moved:    moved,
		Captured: pos.Get(m.To),
		From:     m.From,
		To:       m.To,
	}

	// Move the piece
	next.Clear(m.From)
	next.Set(m.To, moved)

	if isCastlingMove(moved, m.From, m.To) {
		rookFrom, rookTo := castleRookSquares(m.To)
		next.Set(rookTo, next.Get(rookFrom))
		next.Clear(rookFrom)
		record.IsCastle = true
	}

	if isEnPassantCapture(pos, moved, m.From, m.To) {
		victim := enPassantVictim(colour, m.To)
		record.Captured = next.Get(victim)
		record.IsEnPassant = true
		next.Clear(victim)
	}

	if moved.Type == chess.Pawn && m.To.Row == chess.PromotionRow(colour) {
		promoted := promotionPiece(m.Promotion)
		next.Set(m.To, chess.MakePiece(colour, promoted))
		record.IsPromotion = true
		record.PromotedTo = promoted
	}

	// Set en passant square if double pawn push
	next.EnPassant = false
	if isDoublePush(moved, m.From, m.To) {
		next.EnPassant = true
		next.EPSquare = chess.Sq((m.From.Row+m.To.Row)/2, m.From.Col)
	}

	updateCastlingRights(next, moved, m.From)

	if moved.Type == chess.Pawn || record.IsCapture() {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if colour == chess.Black {
		next.MoveNumber++
	}
	next.ToMove = colour.Opposite()

	next.History = append(next.History, record)
	return next, record
}

// PlayMoves parses and plays a sequence of UCI move texts from pos, checking
// each one. It stops at the first bad move and returns the error together
// with the position reached so far.
func PlayMoves(pos *chess.Position, moves ...string) (*chess.Position, error) {
	for _, text := range moves {
		m, err := chess.ParseMove(text)
		if err != nil {
			return pos, err
		}
		if err := ValidateMove(pos, m); err != nil {
			return pos, err
		}
		pos, _ = ApplyMove(pos, m)
	}
	return pos, nil
}

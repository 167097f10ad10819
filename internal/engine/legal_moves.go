package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-console-go/internal/chess"
)

var promotionTypes = []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// HasAnyLegalMove returns true if the given colour has at least one legal
// move. Every square holding one of its pieces is tried against every
// destination square until a legal move is found.
func HasAnyLegalMove(pos *chess.Position, colour chess.Colour) bool {
	found := false
	sweepMoves(asMover(pos, colour), func(chess.Move) bool {
		found = true
		return false
	})
	return found
}

// LegalMoves returns every legal move for the side to move, ordered by
// origin then destination square (row 0 first). A pawn move onto the last
// row appears once per promotion piece.
func LegalMoves(pos *chess.Position) []chess.Move {
	var moves []chess.Move
	sweepMoves(pos, func(m chess.Move) bool {
		if pos.Get(m.From).Type == chess.Pawn && m.To.Row == chess.PromotionRow(pos.ToMove) {
			for _, promo := range promotionTypes {
				m.Promotion = promo
				moves = append(moves, m)
			}
			return true
		}
		moves = append(moves, m)
		return true
	})
	return moves
}

// LegalMoveStrings returns the UCI text of every legal move for the side to
// move, sorted alphabetically.
func LegalMoveStrings(pos *chess.Position) []string {
	moves := LegalMoves(pos)
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}
	slices.Sort(texts)
	return texts
}

// sweepMoves calls fn for each legal (from, to) pair of the side to move
// until fn returns false.
func sweepMoves(pos *chess.Position, fn func(chess.Move) bool) {
	for fromRow := 0; fromRow < chess.BoardSize; fromRow++ {
		for fromCol := 0; fromCol < chess.BoardSize; fromCol++ {
			from := chess.Sq(fromRow, fromCol)
			if pos.Get(from).Colour != pos.ToMove {
				continue
			}
			for toRow := 0; toRow < chess.BoardSize; toRow++ {
				for toCol := 0; toCol < chess.BoardSize; toCol++ {
					m := chess.NewMove(from, chess.Sq(toRow, toCol))
					if IsLegalMove(pos, m) && !fn(m) {
						return
					}
				}
			}
		}
	}
}

// asMover returns pos as seen with colour to move. When colour is not already
// on move a scratch copy is made and its en passant target is dropped, since
// that belongs to the real side to move.
func asMover(pos *chess.Position, colour chess.Colour) *chess.Position {
	if pos.ToMove == colour {
		return pos
	}
	scratch := *pos
	scratch.History = nil
	scratch.ToMove = colour
	scratch.EnPassant = false
	return &scratch
}

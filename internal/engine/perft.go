package engine

import "github.com/lgbarn/chess-console-go/internal/chess"

// Perft counts the leaf positions reached by playing every legal move
// sequence of the given depth from pos. Depth 0 counts pos itself.
func Perft(pos *chess.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(pos)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		next, _ := ApplyMove(pos, m)
		nodes += Perft(next, depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each legal move of pos, keyed by
// the move's UCI text.
func PerftDivide(pos *chess.Position, depth int) map[string]uint64 {
	divide := make(map[string]uint64)
	if depth <= 0 {
		return divide
	}
	for _, m := range LegalMoves(pos) {
		next, _ := ApplyMove(pos, m)
		divide[m.String()] = Perft(next, depth-1)
	}
	return divide
}

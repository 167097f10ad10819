// Package hashing computes Zobrist keys for positions and detects repeated
// positions in a batch.
package hashing

import (
	"github.com/lgbarn/chess-console-go/internal/chess"
)

// zobristSeed fixes the key table so hashes are stable between runs.
const zobristSeed = 0x9E3779B97F4A7C15

type keyTable struct {
	pieces      [2][6][chess.BoardSize * chess.BoardSize]uint64
	blackToMove uint64
	castling    [4]uint64
	epFile      [chess.BoardSize]uint64
}

var keys = newKeyTable(zobristSeed)

// newKeyTable fills a table from a splitmix64 sequence.
func newKeyTable(seed uint64) *keyTable {
	state := seed
	next := func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	t := &keyTable{}
	for c := range t.pieces {
		for p := range t.pieces[c] {
			for sq := range t.pieces[c][p] {
				t.pieces[c][p][sq] = next()
			}
		}
	}
	t.blackToMove = next()
	for i := range t.castling {
		t.castling[i] = next()
	}
	for i := range t.epFile {
		t.epFile[i] = next()
	}
	return t
}

// Hash returns the Zobrist key of pos: piece placement, side to move,
// castling rights and the en passant file. Clocks and history are ignored.
func Hash(pos *chess.Position) uint64 {
	var h uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := pos.Squares[row][col]
			if p.IsEmpty() {
				continue
			}
			h ^= keys.pieces[colourIndex(p.Colour)][p.Type-chess.Pawn][row*chess.BoardSize+col]
		}
	}
	if pos.ToMove == chess.Black {
		h ^= keys.blackToMove
	}
	for i, right := range []bool{pos.WhiteKingside, pos.WhiteQueenside, pos.BlackKingside, pos.BlackQueenside} {
		if right {
			h ^= keys.castling[i]
		}
	}
	if pos.EnPassant {
		h ^= keys.epFile[pos.EPSquare.Col]
	}
	return h
}

func colourIndex(c chess.Colour) int {
	if c == chess.Black {
		return 1
	}
	return 0
}

// WeakHash is a cheap positional checksum used to confirm a Zobrist match.
func WeakHash(pos *chess.Position) uint32 {
	var h uint32
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := pos.Squares[row][col]
			if p.IsEmpty() {
				continue
			}
			sq := uint32(row*chess.BoardSize + col + 1)
			h += sq * uint32(p.FENLetter())
		}
	}
	if pos.ToMove == chess.Black {
		h = ^h
	}
	return h
}

// signature identifies one recorded position.
type signature struct {
	weak  uint32
	index int
}

// DuplicateDetector remembers positions and reports when one comes round
// again. It is not safe for concurrent use.
type DuplicateDetector struct {
	seen       map[uint64][]signature
	duplicates int
}

// NewDuplicateDetector creates an empty detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{seen: make(map[uint64][]signature)}
}

// CheckAndAdd records pos under index. If an identical position was recorded
// earlier it returns that position's index and true, and pos is not recorded
// again.
func (d *DuplicateDetector) CheckAndAdd(pos *chess.Position, index int) (int, bool) {
	hash := Hash(pos)
	weak := WeakHash(pos)
	for _, sig := range d.seen[hash] {
		if sig.weak == weak {
			d.duplicates++
			return sig.index, true
		}
	}
	d.seen[hash] = append(d.seen[hash], signature{weak: weak, index: index})
	return 0, false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicates
}

// UniqueCount returns the number of distinct positions recorded.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.seen {
		count += len(sigs)
	}
	return count
}

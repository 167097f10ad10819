package chess

// MaxHistory is the number of plies a Position records. Play beyond it is
// not supported.
const MaxHistory = 1000

// Position represents a chess position with all state needed to enforce the
// rules and to export FEN.
type Position struct {
	// The board squares, indexed [row][col]. Row 0 is rank 8.
	Squares [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour

	// Castling rights. Once cleared, a right is never set again.
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool

	// Is an en passant capture possible? If so then EPSquare holds the
	// square the last double-pushed pawn skipped over.
	EnPassant bool
	EPSquare  Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// The current move number, incremented after each Black move.
	MoveNumber uint

	// Moves played to reach this position, oldest first.
	History []MoveRecord
}

// NewPosition creates an empty board with White to move.
func NewPosition() *Position {
	return &Position{
		ToMove:     White,
		MoveNumber: 1,
	}
}

// InitialPosition creates a position with the standard chess starting setup.
func InitialPosition() *Position {
	p := NewPosition()

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		p.Squares[0][col] = B(backRank[col])
		p.Squares[1][col] = B(Pawn)
		p.Squares[6][col] = W(Pawn)
		p.Squares[7][col] = W(backRank[col])
	}

	p.WhiteKingside = true
	p.WhiteQueenside = true
	p.BlackKingside = true
	p.BlackQueenside = true
	return p
}

// Get returns the piece on the given square, or NoPiece if the square is off the board.
func (p *Position) Get(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.Squares[sq.Row][sq.Col]
}

// Set places a piece on the given square. Off-board squares are ignored.
func (p *Position) Set(sq Square, piece Piece) {
	if sq.Valid() {
		p.Squares[sq.Row][sq.Col] = piece
	}
}

// Clear empties the given square.
func (p *Position) Clear(sq Square) {
	p.Set(sq, NoPiece)
}

// Copy creates a deep copy of the position, including its history.
func (p *Position) Copy() *Position {
	newPos := &Position{}
	*newPos = *p
	if p.History != nil {
		newPos.History = make([]MoveRecord, len(p.History), len(p.History)+1)
		copy(newPos.History, p.History)
	}
	return newPos
}

// FindKing returns the square of the king of the given colour.
func (p *Position) FindKing(colour Colour) (Square, bool) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p.Squares[row][col].Is(colour, King) {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// CanCastle reports the castling right of the given colour and side.
func (p *Position) CanCastle(colour Colour, kingside bool) bool {
	switch {
	case colour == White && kingside:
		return p.WhiteKingside
	case colour == White:
		return p.WhiteQueenside
	case colour == Black && kingside:
		return p.BlackKingside
	case colour == Black:
		return p.BlackQueenside
	}
	return false
}

// RevokeCastling clears the castling right of the given colour and side.
func (p *Position) RevokeCastling(colour Colour, kingside bool) {
	switch {
	case colour == White && kingside:
		p.WhiteKingside = false
	case colour == White:
		p.WhiteQueenside = false
	case colour == Black && kingside:
		p.BlackKingside = false
	case colour == Black:
		p.BlackQueenside = false
	}
}

// PlyCount returns the number of half-moves recorded in the history.
func (p *Position) PlyCount() int {
	return len(p.History)
}

// HistoryFull returns true once the position has recorded MaxHistory plies.
func (p *Position) HistoryFull() bool {
	return len(p.History) >= MaxHistory
}

// LastMove returns the most recent move record, if any.
func (p *Position) LastMove() (MoveRecord, bool) {
	if len(p.History) == 0 {
		return MoveRecord{}, false
	}
	return p.History[len(p.History)-1], true
}

// HistoryNotations returns the UCI notation of every recorded move, oldest first.
func (p *Position) HistoryNotations() []string {
	notations := make([]string, len(p.History))
	for i, rec := range p.History {
		notations[i] = rec.Notation
	}
	return notations
}

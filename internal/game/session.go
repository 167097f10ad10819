// Package game runs a single game: it takes moves from a human or an engine,
// checks and plays them, and tracks the game state after every ply.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/config"
	"github.com/lgbarn/chess-console-go/internal/engine"
	"github.com/lgbarn/chess-console-go/internal/errors"
	"github.com/lgbarn/chess-console-go/internal/uci"
)

// FiftyMoveLimit is the halfmove clock value at which the game is drawn.
const FiftyMoveLimit = 100

// State is where the console flow currently is.
type State int

const (
	Menu State = iota
	Setup
	Playing
	EngineThinking
	WaitingHuman
	GameOver
	Error
	Exit
)

var stateNames = [...]string{"menu", "setup", "playing", "engine thinking", "waiting for human", "game over", "error", "exit"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Result classifies a submitted move.
type Result int

const (
	Success Result = iota
	InvalidFormat
	Illegal
	Over // the game had already finished
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case InvalidFormat:
		return "invalid format"
	case Illegal:
		return "illegal"
	case Over:
		return "game over"
	}
	return "unknown"
}

// Status describes the position after the last ply.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	FiftyMoveDraw
	MoveLimit
	Resigned // the engine had no move to offer
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "50-move rule draw"
	case MoveLimit:
		return "move limit reached"
	case Resigned:
		return "resigned"
	}
	return "unknown"
}

// IsOver reports whether no further moves may be played.
func (s Status) IsOver() bool {
	return s != Ongoing && s != Check
}

// Opponent chooses moves for one side. *uci.Engine satisfies it.
type Opponent interface {
	SetPositionFEN(fen string, moves []string) error
	BestMove(ctx context.Context, movetime time.Duration) (string, *uci.Evaluation, error)
}

// Session is one game in progress. It is not safe for concurrent use.
type Session struct {
	cfg      *config.Config
	players  config.PlayerConfig
	startFEN string
	pos      *chess.Position
	state    State
	status   Status
	message  string
	lastEval *uci.Evaluation
}

// NewSession creates a session waiting at the menu. A nil cfg uses defaults.
func NewSession(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Session{
		cfg:     cfg,
		players: cfg.Players,
		pos:     chess.InitialPosition(),
		state:   Menu,
	}
}

// Setup chooses the players for the next game.
func (s *Session) Setup(players config.PlayerConfig) {
	s.players = players
	s.state = Setup
	s.message = ""
}

// Start begins a game from pos, or from the initial position when pos is
// nil. The position is copied.
func (s *Session) Start(pos *chess.Position) {
	if pos == nil {
		pos = chess.InitialPosition()
	}
	s.pos = pos.Copy()
	s.pos.History = nil
	s.startFEN = engine.ToFEN(s.pos)
	s.lastEval = nil
	s.message = ""
	s.state = Playing
	s.advance()
	s.cfg.Logf(config.Normal, "new game: %s (%s) vs %s (%s)\n",
		chess.White, s.players.White, chess.Black, s.players.Black)
}

// advance re-evaluates the position and moves the flow to whoever acts next.
func (s *Session) advance() {
	s.status = Evaluate(s.pos)
	switch {
	case s.status.IsOver():
		s.state = GameOver
	case s.players.For(s.pos.ToMove) == config.EnginePlayer:
		s.state = EngineThinking
	default:
		s.state = WaitingHuman
	}
}

// Evaluate returns the status of pos for the side to move.
func Evaluate(pos *chess.Position) Status {
	switch {
	case engine.IsCheckmate(pos):
		return Checkmate
	case engine.IsStalemate(pos):
		return Stalemate
	case pos.HalfmoveClock >= FiftyMoveLimit:
		return FiftyMoveDraw
	case pos.HistoryFull():
		return MoveLimit
	case engine.IsKingInCheck(pos, pos.ToMove):
		return Check
	}
	return Ongoing
}

// Submit parses and plays a move in UCI notation for the side to move.
// On anything but Success the position is unchanged and the error says why.
func (s *Session) Submit(text string) (Result, error) {
	if s.status.IsOver() {
		return Over, errors.ErrGameOver
	}
	m, err := chess.ParseMove(text)
	if err != nil {
		s.message = "Invalid move format. Use format like 'e2e4'"
		return InvalidFormat, err
	}
	return s.play(m)
}

// SubmitSquares plays a move given as two squares, as reported by a board
// detector. Pawns reaching the last rank become queens.
func (s *Session) SubmitSquares(from, to chess.Square) (Result, error) {
	if s.status.IsOver() {
		return Over, errors.ErrGameOver
	}
	if !from.Valid() || !to.Valid() {
		s.message = "Invalid square. Use a1-h8 format"
		return InvalidFormat, errors.Wrapf(errors.ErrInvalidSquare, "%v to %v", from, to)
	}
	return s.play(chess.NewMove(from, to))
}

func (s *Session) play(m chess.Move) (Result, error) {
	if err := engine.ValidateMove(s.pos, m); err != nil {
		s.message = describeRejection(err)
		return Illegal, err
	}

	mover := s.pos.ToMove
	next, record := engine.ApplyMove(s.pos, m)
	s.pos = next
	s.message = fmt.Sprintf("%s played: %s", mover, record.Notation)
	s.cfg.Logf(config.Commentary, "%d. %s %s\n", s.pos.PlyCount(), mover, record.Describe())

	s.state = Playing
	s.advance()
	if s.status.IsOver() {
		s.cfg.Logf(config.Normal, "game over: %s\n", s.status)
	}
	return Success, nil
}

func describeRejection(err error) string {
	switch {
	case errors.Is(err, errors.ErrInvalidSquare):
		return "Invalid square. Use a1-h8 format"
	case errors.Is(err, errors.ErrNoPiece):
		return "No piece at source square"
	case errors.Is(err, errors.ErrWrongTurn):
		return "That piece is not yours to move"
	case errors.Is(err, errors.ErrKingInCheck):
		return "Move would leave king in check"
	}
	return "Illegal move"
}

// PlayOpponent asks opp for a move for the side to move and plays it.
// An opponent with no move resigns the game. Any other failure, including an
// illegal reply, puts the session in the Error state.
func (s *Session) PlayOpponent(ctx context.Context, opp Opponent) (string, error) {
	if s.status.IsOver() {
		return "", errors.ErrGameOver
	}
	s.state = EngineThinking

	if err := opp.SetPositionFEN(s.startFEN, s.pos.HistoryNotations()); err != nil {
		return "", s.fail("Failed to set position", err)
	}
	move, eval, err := opp.BestMove(ctx, s.cfg.Engine.MoveTime)
	if errors.Is(err, errors.ErrNoBestMove) {
		s.status = Resigned
		s.state = GameOver
		s.message = "Engine failed to respond or game is over"
		s.cfg.Logf(config.Normal, "game over: %s has no move\n", s.pos.ToMove)
		return "", nil
	}
	if err != nil {
		return "", s.fail("Engine failed to respond", err)
	}
	s.lastEval = eval

	if _, err := s.Submit(move); err != nil {
		return move, s.fail("Engine made invalid move!", err)
	}
	if eval != nil {
		s.cfg.Logf(config.Commentary, "engine eval %s depth %d\n", uci.FormatEvaluation(eval), eval.Depth)
	}
	return move, nil
}

func (s *Session) fail(message string, err error) error {
	s.state = Error
	s.message = message
	s.cfg.Logf(config.Normal, "error: %s: %v\n", message, err)
	return errors.Wrap(err, message)
}

// Recover leaves the Error state for the menu.
func (s *Session) Recover() {
	if s.state == Error {
		s.state = Menu
	}
}

// Quit ends the session.
func (s *Session) Quit() {
	s.state = Exit
}

// Winner returns the winning colour, or NoColour while the game is running
// or when it was drawn.
func (s *Session) Winner() chess.Colour {
	switch s.status {
	case Checkmate, Resigned:
		return s.pos.ToMove.Opposite()
	}
	return chess.NoColour
}

// State returns where the flow is.
func (s *Session) State() State { return s.state }

// Status returns the status after the last ply.
func (s *Session) Status() Status { return s.status }

// Message returns the last user-facing status line.
func (s *Session) Message() string { return s.message }

// Position returns the current position. Callers must not modify it.
func (s *Session) Position() *chess.Position { return s.pos }

// Players returns who plays each colour.
func (s *Session) Players() config.PlayerConfig { return s.players }

// LastEvaluation returns the engine's opinion from its last move, or nil.
func (s *Session) LastEvaluation() *uci.Evaluation { return s.lastEval }

// FEN returns the current position in FEN.
func (s *Session) FEN() string { return engine.ToFEN(s.pos) }

// History returns the last n plies in UCI notation, all of them if n <= 0.
func (s *Session) History(n int) []string {
	notations := s.pos.HistoryNotations()
	if n > 0 && len(notations) > n {
		notations = notations[len(notations)-n:]
	}
	return notations
}

// LegalMoves lists the moves available to the side to move.
func (s *Session) LegalMoves() []string {
	if s.status.IsOver() {
		return nil
	}
	return engine.LegalMoveStrings(s.pos)
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/config"
	"github.com/lgbarn/chess-console-go/internal/diagram"
	"github.com/lgbarn/chess-console-go/internal/game"
	"github.com/lgbarn/chess-console-go/internal/uci"
)

// historyShown is how many plies the history command prints.
const historyShown = 10

// engineHandle is the part of *uci.Engine the console drives.
type engineHandle interface {
	game.Opponent
	NewGame(ctx context.Context) error
	Close() error
}

// launcher starts the engine described by cfg.
type launcher func(ctx context.Context, cfg *config.Config) (engineHandle, error)

// launchUCI starts the configured UCI engine. With commentary enabled the
// engine traffic is traced to the log file.
func launchUCI(ctx context.Context, cfg *config.Config) (engineHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Engine.StartTimeout)
	defer cancel()

	opts := []uci.Option{uci.WithDepth(cfg.Engine.Depth)}
	if cfg.Verbosity >= config.Commentary && cfg.LogFile != nil {
		opts = append(opts, uci.WithTrace(cfg.LogFile))
	}
	eng, err := uci.Start(ctx, cfg.Engine.Path, opts...)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// menuChoices maps menu entries to the players they set up.
var menuChoices = map[string]config.PlayerConfig{
	"1": {White: config.HumanPlayer, Black: config.EnginePlayer},
	"2": {White: config.EnginePlayer, Black: config.HumanPlayer},
	"3": {White: config.EnginePlayer, Black: config.EnginePlayer},
	"4": {White: config.HumanPlayer, Black: config.HumanPlayer},
}

// console runs games over a line-oriented terminal.
type console struct {
	cfg     *config.Config
	in      *bufio.Scanner
	out     io.Writer
	launch  launcher
	engine  engineHandle
	session *game.Session

	// start is the position every game begins from; nil means the
	// initial position.
	start    *chess.Position
	lastGame []chess.MoveRecord
}

func newConsole(cfg *config.Config, in io.Reader, out io.Writer) *console {
	return &console{
		cfg:     cfg,
		in:      bufio.NewScanner(in),
		out:     out,
		launch:  launchUCI,
		session: game.NewSession(cfg),
	}
}

// close shuts the engine down if one was started.
func (c *console) close() {
	c.dropEngine()
}

func (c *console) dropEngine() {
	if c.engine == nil {
		return
	}
	if err := c.engine.Close(); err != nil {
		c.cfg.Logf(config.Normal, "closing engine: %v\n", err)
	}
	c.engine = nil
}

// readLine returns the next trimmed input line, or false at end of input.
func (c *console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// runMenu shows the main menu until the user exits or input runs out.
func (c *console) runMenu(ctx context.Context) {
	for ctx.Err() == nil {
		c.printMenu()
		choice, ok := c.readLine()
		if !ok {
			return
		}
		if players, ok := menuChoices[choice]; ok {
			if !c.playGame(ctx, players) {
				return
			}
			continue
		}
		switch choice {
		case "5":
			if len(c.lastGame) == 0 {
				fmt.Fprintln(c.out, "No moves to display.")
				continue
			}
			c.printHistory(c.lastGame, 0)
		case "6", "q", "quit", "exit":
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *console) printMenu() {
	fmt.Fprintln(c.out, "\n=== Chess Game with UCI Engine ===")
	fmt.Fprintln(c.out, "1. Play as White vs Engine")
	fmt.Fprintln(c.out, "2. Play as Black vs Engine")
	fmt.Fprintln(c.out, "3. Engine vs Engine")
	fmt.Fprintln(c.out, "4. Human vs Human")
	fmt.Fprintln(c.out, "5. View last game moves")
	fmt.Fprintln(c.out, "6. Exit")
	fmt.Fprint(c.out, "Choose option (1-6): ")
}

// playGame plays one game between players. It returns false when the user
// quit the program rather than finishing the game.
func (c *console) playGame(ctx context.Context, players config.PlayerConfig) bool {
	s := c.session
	s.Setup(players)
	if players.NeedsEngine() {
		if err := c.ensureEngine(ctx); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return true
		}
	}
	s.Start(c.start)

	for {
		if ctx.Err() != nil {
			s.Quit()
		}
		switch s.State() {
		case game.WaitingHuman:
			c.humanTurn()
		case game.EngineThinking:
			c.engineTurn(ctx)
		case game.GameOver:
			c.gameOver()
			return true
		case game.Error:
			fmt.Fprintf(c.out, "Error: %s\n", s.Message())
			c.lastGame = s.Position().History
			c.dropEngine()
			s.Recover()
			return true
		default:
			c.lastGame = s.Position().History
			return false
		}
	}
}

// ensureEngine starts the engine on first use and resets it for a new game.
func (c *console) ensureEngine(ctx context.Context) error {
	if c.engine == nil {
		fmt.Fprintln(c.out, "\nStarting chess engine...")
		eng, err := c.launch(ctx, c.cfg)
		if err != nil {
			return err
		}
		c.engine = eng
		fmt.Fprintln(c.out, "Engine started successfully!")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Engine.StartTimeout)
	defer cancel()
	if err := c.engine.NewGame(ctx); err != nil {
		c.dropEngine()
		return err
	}
	return nil
}

func (c *console) humanTurn() {
	s := c.session
	c.printBoard(s.Position())
	c.printStatus()
	fmt.Fprintf(c.out, "%s to move. Enter your move (e.g., e2e4), 'help', 'history', or 'quit': ", s.Position().ToMove)

	line, ok := c.readLine()
	if !ok {
		s.Quit()
		return
	}
	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		s.Quit()
	case "help":
		c.printHelp()
	case "history":
		c.printHistory(s.Position().History, historyShown)
	case "fen":
		fmt.Fprintln(c.out, s.FEN())
	case "moves":
		fmt.Fprintln(c.out, strings.Join(s.LegalMoves(), " "))
	case "svg":
		c.writeDiagram(strings.TrimSpace(arg), s.Position())
	default:
		// A rejected move leaves the reason in the status line.
		_, _ = s.Submit(line)
	}
}

func (c *console) engineTurn(ctx context.Context) {
	s := c.session
	fmt.Fprintln(c.out, "Engine is thinking...")

	if d := c.moveDeadline(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	move, err := s.PlayOpponent(ctx, c.engine)
	if err != nil || move == "" {
		return
	}

	fmt.Fprintf(c.out, "Engine plays: %s", move)
	if eval := s.LastEvaluation(); eval != nil && eval.Depth > 0 {
		fmt.Fprintf(c.out, " (%s, depth %d)", uci.FormatEvaluation(eval), eval.Depth)
	}
	fmt.Fprintln(c.out)

	// Nobody would see the board otherwise.
	if s.State() == game.EngineThinking {
		c.printBoard(s.Position())
	}
}

// moveDeadline bounds one engine move. Fixed-depth searches are unbounded.
func (c *console) moveDeadline() time.Duration {
	if c.cfg.Engine.Depth > 0 {
		return 0
	}
	return c.cfg.Engine.MoveTime + c.cfg.Engine.StartTimeout
}

func (c *console) gameOver() {
	s := c.session
	c.printBoard(s.Position())
	fmt.Fprintln(c.out, "\n=== GAME OVER ===")
	if winner := s.Winner(); winner == chess.NoColour {
		fmt.Fprintln(c.out, "Game ended in a draw!")
	} else {
		fmt.Fprintf(c.out, "%s wins!\n", winner)
	}
	fmt.Fprintf(c.out, "Reason: %s\n", s.Status())

	c.lastGame = s.Position().History
	if c.cfg.Output.SVGFile != "" {
		c.writeDiagram(c.cfg.Output.SVGFile, s.Position())
	}
}

func (c *console) printBoard(pos *chess.Position) {
	writeBoard(c.out, pos)
}

// writeBoard draws pos as text with rank 8 at the top.
func writeBoard(w io.Writer, pos *chess.Position) {
	const rule = "  +---+---+---+---+---+---+---+---+\n"
	var sb strings.Builder
	sb.WriteString("\n" + rule)
	for row := 0; row < chess.BoardSize; row++ {
		fmt.Fprintf(&sb, "%c |", chess.LastRank-row)
		for col := 0; col < chess.BoardSize; col++ {
			letter := pos.Squares[row][col].FENLetter()
			if letter == '.' {
				letter = ' '
			}
			fmt.Fprintf(&sb, " %c |", letter)
		}
		sb.WriteString("\n" + rule)
	}
	sb.WriteString("    a   b   c   d   e   f   g   h\n\n")
	io.WriteString(w, sb.String()) //nolint:errcheck,gosec // console output
}

func (c *console) printStatus() {
	s := c.session
	pos := s.Position()
	players := s.Players()
	fmt.Fprintf(c.out, "Turn: %s (%s)\n", pos.ToMove, players.For(pos.ToMove))
	if last, ok := pos.LastMove(); ok {
		fmt.Fprintf(c.out, "Last move: %s\n", last.Notation)
	}
	if s.Status() == game.Check {
		fmt.Fprintf(c.out, "*** %s KING IN CHECK! ***\n", strings.ToUpper(pos.ToMove.String()))
	}
	if msg := s.Message(); msg != "" {
		fmt.Fprintf(c.out, "Status: %s\n", msg)
	}
	fmt.Fprintf(c.out, "Move: %d, Halfmove clock: %d\n\n", pos.MoveNumber, pos.HalfmoveClock)
}

func (c *console) printHelp() {
	fmt.Fprintln(c.out, "\nHow to play:")
	fmt.Fprintln(c.out, "- Enter moves in UCI format: e2e4, g1f3, etc.")
	fmt.Fprintln(c.out, "- For promotion, add piece: e7e8q (queen), e7e8r (rook), etc.")
	fmt.Fprintln(c.out, "- Castling: e1g1 (kingside), e1c1 (queenside)")
	fmt.Fprintln(c.out, "- Commands: 'help', 'history', 'fen', 'moves', 'svg <file>', 'quit'")
	fmt.Fprintln(c.out)
}

// printHistory prints the last n records, all of them when n <= 0, two
// plies to a line.
func (c *console) printHistory(records []chess.MoveRecord, n int) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No moves yet.")
		return
	}
	start := 0
	if n > 0 && len(records) > n {
		start = len(records) - n
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Move History (last %d):\n", len(records)-start)
	for i := start; i < len(records); i++ {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. %s  ", i/2+1, records[i].Describe())
		} else {
			if i == start {
				fmt.Fprintf(&sb, "%d. ... ", i/2+1)
			}
			sb.WriteString(records[i].Describe() + "\n")
		}
	}
	if len(records)%2 == 1 {
		sb.WriteString("\n")
	}
	fmt.Fprintln(c.out, sb.String())
}

// writeDiagram saves pos as an SVG, drawn from Black's side when a human
// plays Black against the engine.
func (c *console) writeDiagram(path string, pos *chess.Position) {
	if path == "" {
		fmt.Fprintln(c.out, "Usage: svg <file>")
		return
	}
	var opts []diagram.Option
	if p := c.session.Players(); p.Black == config.HumanPlayer && p.White == config.EnginePlayer {
		opts = append(opts, diagram.Flipped())
	}
	if err := saveDiagram(path, pos, c.cfg.Output.DiagramSize, opts...); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Diagram written to %s\n", path)
}

func saveDiagram(path string, pos *chess.Position, size int, opts ...diagram.Option) (err error) {
	file, err := os.Create(path) //nolint:gosec // G304: CLI tool writes user-specified files
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return diagram.WriteSVG(file, pos, size, opts...)
}

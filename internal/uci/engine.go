// Package uci drives an external chess engine over the UCI protocol.
//
// An Engine owns one child process for its whole life: Start launches it and
// completes the handshake, the caller sends positions and asks for moves, and
// Close shuts it down. Each Engine reads the process output on its own
// goroutine; there is no package-level state.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	nuci "github.com/notnil/chess/uci"

	"github.com/lgbarn/chess-console-go/internal/errors"
)

// quitGrace is how long Close waits for the process after sending quit.
const quitGrace = 500 * time.Millisecond

// Evaluation holds the engine's latest opinion of the position, from the
// side to move's point of view.
type Evaluation struct {
	Score    int // centipawns
	IsMate   bool
	MateIn   int // moves to mate; negative when being mated
	Depth    int
	BestMove string
	PV       []string
}

// Option configures an Engine before it is started.
type Option func(*Engine)

// WithTrace copies every command sent and line received to w.
func WithTrace(w io.Writer) Option {
	return func(e *Engine) { e.trace = w }
}

// WithDepth makes BestMove search to a fixed depth instead of a fixed time.
func WithDepth(depth int) Option {
	return func(e *Engine) { e.depth = depth }
}

// WithArgs passes extra command line arguments to the engine binary.
func WithArgs(args ...string) Option {
	return func(e *Engine) { e.args = append(e.args, args...) }
}

// WithEnv adds environment variables (KEY=value) to the engine process.
func WithEnv(env ...string) Option {
	return func(e *Engine) { e.env = append(e.env, env...) }
}

// Engine is a running UCI engine process.
type Engine struct {
	Name string // from "id name", empty if the engine does not send one

	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
	exit  chan struct{}

	trace io.Writer
	depth int
	args  []string
	env   []string

	mu     sync.Mutex
	closed bool
}

// Start launches the engine at path and waits for the uciok and readyok
// handshakes. ctx bounds the handshake only; the process outlives it.
func Start(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	e := &Engine{
		lines: make(chan string, 64),
		exit:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.cmd = exec.Command(path, e.args...)
	if len(e.env) > 0 {
		e.cmd.Env = append(e.cmd.Environ(), e.env...)
	}

	var err error
	e.stdin, err = e.cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "engine stdin")
	}
	stdout, err := e.cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "engine stdout")
	}
	if err := e.cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "starting engine %s", path)
	}

	// Wait closes stdout, so it runs only once readLoop has seen EOF.
	go func() {
		e.readLoop(stdout)
		_ = e.cmd.Wait()
		close(e.exit)
	}()

	if err := e.handshake(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) handshake(ctx context.Context) error {
	if err := e.Send("uci"); err != nil {
		return err
	}
	for {
		line, err := e.readLine(ctx)
		if err != nil {
			return errors.Wrap(err, "waiting for uciok")
		}
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			e.Name = name
		}
		if line == "uciok" {
			break
		}
	}
	return e.sync(ctx)
}

// sync sends isready and waits for readyok.
func (e *Engine) sync(ctx context.Context) error {
	if err := e.Send("isready"); err != nil {
		return err
	}
	if err := e.waitFor(ctx, "readyok"); err != nil {
		return errors.Wrap(err, "waiting for readyok")
	}
	return nil
}

func (e *Engine) readLoop(r io.Reader) {
	defer close(e.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e.tracef("< %s\n", line)
		e.lines <- line
	}
}

func (e *Engine) readLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-e.lines:
		if !ok {
			return "", errors.ErrEngineNotRunning
		}
		return line, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", errors.ErrEngineTimeout, ctx.Err())
	}
}

func (e *Engine) waitFor(ctx context.Context, want string) error {
	for {
		line, err := e.readLine(ctx)
		if err != nil {
			return err
		}
		if line == want {
			return nil
		}
	}
}

func (e *Engine) tracef(format string, args ...interface{}) {
	if e.trace != nil {
		fmt.Fprintf(e.trace, format, args...)
	}
}

// Send writes one command line to the engine.
func (e *Engine) Send(cmd string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.ErrEngineNotRunning
	}
	e.tracef("> %s\n", cmd)
	if _, err := io.WriteString(e.stdin, cmd+"\n"); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrEngineNotRunning, err)
	}
	return nil
}

// NewGame tells the engine a new game starts and waits until it is ready.
func (e *Engine) NewGame(ctx context.Context) error {
	if err := e.Send("ucinewgame"); err != nil {
		return err
	}
	return e.sync(ctx)
}

// SetPosition sets the standard starting position followed by moves in UCI
// notation.
func (e *Engine) SetPosition(moves []string) error {
	return e.Send(positionCommand("startpos", moves))
}

// SetPositionFEN sets a FEN position followed by moves in UCI notation.
func (e *Engine) SetPositionFEN(fen string, moves []string) error {
	return e.Send(positionCommand("fen "+fen, moves))
}

func positionCommand(base string, moves []string) string {
	var sb strings.Builder
	sb.WriteString("position ")
	sb.WriteString(base)
	if len(moves) > 0 {
		sb.WriteString(" moves")
		for _, m := range moves {
			sb.WriteByte(' ')
			sb.WriteString(m)
		}
	}
	return sb.String()
}

// BestMove starts a search on the current position and returns the move the
// engine chooses along with its last reported evaluation. The search runs for
// movetime, or to the depth given by WithDepth. If ctx ends first the search
// is stopped and ErrEngineTimeout is returned.
func (e *Engine) BestMove(ctx context.Context, movetime time.Duration) (string, *Evaluation, error) {
	goCmd := fmt.Sprintf("go movetime %d", movetime.Milliseconds())
	if e.depth > 0 {
		goCmd = fmt.Sprintf("go depth %d", e.depth)
	}
	if err := e.Send(goCmd); err != nil {
		return "", nil, err
	}

	eval := &Evaluation{}
	for {
		line, err := e.readLine(ctx)
		if err != nil {
			if errors.Is(err, errors.ErrEngineTimeout) {
				e.stopSearch()
			}
			return "", nil, err
		}

		switch {
		case strings.HasPrefix(line, "info "):
			e.parseInfo(line, eval)
		case strings.HasPrefix(line, "bestmove"):
			fields := strings.Fields(line)
			if len(fields) < 2 || fields[1] == "(none)" || fields[1] == "0000" {
				return "", eval, errors.ErrNoBestMove
			}
			eval.BestMove = fields[1]
			return fields[1], eval, nil
		}
	}
}

// stopSearch interrupts a running search and discards its bestmove so the
// next command starts clean.
func (e *Engine) stopSearch() {
	if err := e.Send("stop"); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), quitGrace)
	defer cancel()
	for {
		line, err := e.readLine(ctx)
		if err != nil || strings.HasPrefix(line, "bestmove") {
			return
		}
	}
}

// parseInfo folds the depth, score and pv of one info line into eval.
// Fields the line does not mention are left alone, and a line that does not
// parse is ignored.
func (e *Engine) parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "info" || fields[1] == "string" {
		return
	}
	var info nuci.Info
	if err := info.UnmarshalText([]byte(strings.Join(fields, " "))); err != nil {
		return
	}

	seen := make(map[string]bool)
	for _, f := range fields[1:] {
		if f == "pv" {
			break
		}
		seen[f] = true
	}
	if seen["depth"] {
		eval.Depth = info.Depth
	}
	switch {
	case seen["mate"]:
		eval.MateIn = info.Score.Mate
		eval.IsMate = true
	case seen["cp"]:
		eval.Score = info.Score.CP
		eval.IsMate = false
	}
	if len(info.PV) > 0 {
		eval.PV = make([]string, len(info.PV))
		for i, m := range info.PV {
			eval.PV[i] = m.String()
		}
	}
}

// Close sends quit, gives the process a moment to exit and then kills it.
// It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.tracef("> quit\n")
	_, _ = io.WriteString(e.stdin, "quit\n")
	e.closed = true
	_ = e.stdin.Close()
	e.mu.Unlock()

	// Drain output so readLoop can reach EOF and let Wait run.
	lines := e.lines
	grace := time.After(quitGrace)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				lines = nil
			}
		case <-grace:
			_ = e.cmd.Process.Kill()
			grace = nil
		case <-e.exit:
			return nil
		}
	}
}

// FormatEvaluation renders an evaluation as "+1.23" in pawns or "+M3" for a
// forced mate.
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := "+"
	score := eval.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

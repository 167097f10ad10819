package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/chess-console-go/internal/analysis"
	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/config"
	"github.com/lgbarn/chess-console-go/internal/engine"
	"github.com/lgbarn/chess-console-go/internal/errors"
	"github.com/lgbarn/chess-console-go/internal/testutil"
	"github.com/lgbarn/chess-console-go/internal/uci"
)

// fakeEngine replays a fixed list of moves and then has none.
type fakeEngine struct {
	moves    []string
	next     int
	newGames int
	closed   bool
}

func (f *fakeEngine) SetPositionFEN(string, []string) error { return nil }

func (f *fakeEngine) BestMove(context.Context, time.Duration) (string, *uci.Evaluation, error) {
	if f.next >= len(f.moves) {
		return "", nil, errors.ErrNoBestMove
	}
	move := f.moves[f.next]
	f.next++
	return move, &uci.Evaluation{Score: 25, Depth: 8, BestMove: move}, nil
}

func (f *fakeEngine) NewGame(context.Context) error {
	f.newGames++
	return nil
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

// newTestConsole builds a console reading input and writing to the
// returned buffer. eng, if not nil, is handed out by the launcher.
func newTestConsole(t *testing.T, input string, eng *fakeEngine) (*console, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewConfigBuilder().
		WithVerbosity(config.Silent).
		WithLogFile(&bytes.Buffer{}).
		Build()
	var out bytes.Buffer
	c := newConsole(cfg, strings.NewReader(input), &out)
	c.launch = func(context.Context, *config.Config) (engineHandle, error) {
		if eng == nil {
			return nil, errors.ErrEngineNotRunning
		}
		return eng, nil
	}
	return c, &out
}

var (
	humanVsHuman  = config.PlayerConfig{White: config.HumanPlayer, Black: config.HumanPlayer}
	humanVsEngine = config.PlayerConfig{White: config.HumanPlayer, Black: config.EnginePlayer}
	engineVsHuman = config.PlayerConfig{White: config.EnginePlayer, Black: config.HumanPlayer}
)

func TestPlayGame_FoolsMateAgainstEngine(t *testing.T) {
	eng := &fakeEngine{moves: []string{"e7e5", "d8h4"}}
	c, out := newTestConsole(t, "f2f3\ng2g4\n", eng)

	testutil.AssertTrue(t, c.playGame(context.Background(), humanVsEngine))

	got := out.String()
	testutil.AssertContains(t, got, "Engine started successfully!")
	testutil.AssertContains(t, got, "Engine plays: e7e5 (+0.25, depth 8)")
	testutil.AssertContains(t, got, "Engine plays: d8h4")
	testutil.AssertContains(t, got, "=== GAME OVER ===")
	testutil.AssertContains(t, got, "Black wins!")
	testutil.AssertContains(t, got, "Reason: checkmate")
	testutil.AssertEqual(t, eng.newGames, 1)
	testutil.AssertEqual(t, len(c.lastGame), 4)
}

func TestPlayGame_EngineWithoutMoveResigns(t *testing.T) {
	eng := &fakeEngine{moves: []string{"e7e5"}}
	c, out := newTestConsole(t, "e2e4\nd2d4\n", eng)

	testutil.AssertTrue(t, c.playGame(context.Background(), humanVsEngine))

	got := out.String()
	testutil.AssertContains(t, got, "White wins!")
	testutil.AssertContains(t, got, "Reason: resigned")
}

func TestPlayGame_EngineIllegalMove(t *testing.T) {
	eng := &fakeEngine{moves: []string{"e2e5"}}
	c, out := newTestConsole(t, "", eng)

	testutil.AssertTrue(t, c.playGame(context.Background(), engineVsHuman))

	testutil.AssertContains(t, out.String(), "Error: Engine made invalid move!")
	testutil.AssertTrue(t, eng.closed)
	testutil.AssertNil(t, c.engine)
}

func TestPlayGame_EngineFailsToStart(t *testing.T) {
	c, out := newTestConsole(t, "", nil)

	testutil.AssertTrue(t, c.playGame(context.Background(), humanVsEngine))
	testutil.AssertContains(t, out.String(), "Error: "+errors.ErrEngineNotRunning.Error())
	testutil.AssertNil(t, c.engine)
}

func TestPlayGame_EngineReusedAcrossGames(t *testing.T) {
	eng := &fakeEngine{}
	c, _ := newTestConsole(t, "", eng)

	// Without input both games end at once; the engine stays up.
	c.playGame(context.Background(), humanVsEngine)
	c.playGame(context.Background(), humanVsEngine)
	testutil.AssertEqual(t, eng.newGames, 2)
	testutil.AssertFalse(t, eng.closed)

	c.close()
	testutil.AssertTrue(t, eng.closed)
}

func TestPlayGame_HumanCommands(t *testing.T) {
	svgPath := filepath.Join(t.TempDir(), "board.svg")
	input := strings.Join([]string{
		"help",
		"fen",
		"moves",
		"bogus",
		"e2e5",
		"e2e4",
		"history",
		"svg " + svgPath,
		"svg",
		"quit",
	}, "\n")
	c, out := newTestConsole(t, input, nil)

	testutil.AssertFalse(t, c.playGame(context.Background(), humanVsHuman))

	got := out.String()
	testutil.AssertContains(t, got, "How to play:")
	testutil.AssertContains(t, got, engine.InitialFEN+"\n")
	testutil.AssertContains(t, got, "a2a3 a2a4 b1a3")
	testutil.AssertContains(t, got, "Status: Invalid move format. Use format like 'e2e4'")
	testutil.AssertContains(t, got, "Status: Illegal move")
	testutil.AssertContains(t, got, "Status: White played: e2e4")
	testutil.AssertContains(t, got, "Move History (last 1):\n1. e2e4")
	testutil.AssertContains(t, got, "Diagram written to "+svgPath)
	testutil.AssertContains(t, got, "Usage: svg <file>")
	testutil.AssertContains(t, got, "Black to move.")

	data, err := os.ReadFile(svgPath)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), "</svg>")
	testutil.AssertEqual(t, len(c.lastGame), 1)
}

func TestPlayGame_CheckNotice(t *testing.T) {
	c, out := newTestConsole(t, "e2e4\nf7f6\nd1h5\nquit\n", nil)

	c.playGame(context.Background(), humanVsHuman)
	testutil.AssertContains(t, out.String(), "*** BLACK KING IN CHECK! ***")
}

func TestPlayGame_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestConsole(t, "e2e4\n", nil)

	testutil.AssertFalse(t, c.playGame(ctx, humanVsHuman))
	testutil.AssertEqual(t, len(c.lastGame), 0)
}

func TestPlayGame_FromFENWritesFinalDiagram(t *testing.T) {
	svgPath := filepath.Join(t.TempDir(), "final.svg")
	c, out := newTestConsole(t, "a1a8\n", nil)
	c.cfg.Output.SVGFile = svgPath
	c.start = engine.MustFromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	testutil.AssertTrue(t, c.playGame(context.Background(), humanVsHuman))

	got := out.String()
	testutil.AssertContains(t, got, "White wins!")
	testutil.AssertContains(t, got, "Diagram written to "+svgPath)
	data, err := os.ReadFile(svgPath)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), "<title>R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1</title>")
}

func TestRunMenu(t *testing.T) {
	input := strings.Join([]string{
		"5",
		"9",
		"4",
		"f2f3", "e7e5", "g2g4", "d8h4",
		"5",
		"6",
	}, "\n")
	c, out := newTestConsole(t, input, nil)

	c.runMenu(context.Background())

	got := out.String()
	testutil.AssertContains(t, got, "=== Chess Game with UCI Engine ===")
	testutil.AssertContains(t, got, "No moves to display.")
	testutil.AssertContains(t, got, "Invalid choice.")
	testutil.AssertContains(t, got, "Black wins!")
	testutil.AssertContains(t, got, "Move History (last 4):\n1. f2f3  e7e5\n2. g2g4  d8h4\n")
	testutil.AssertEqual(t, strings.Count(got, "Choose option (1-6): "), 5)
}

func TestRunMenu_QuitFromGame(t *testing.T) {
	c, out := newTestConsole(t, "4\nquit\n5\n", nil)

	c.runMenu(context.Background())

	// quit leaves the program, so the second menu choice is never read.
	testutil.AssertEqual(t, strings.Count(out.String(), "Choose option (1-6): "), 1)
}

func TestWriteBoard(t *testing.T) {
	var buf bytes.Buffer
	writeBoard(&buf, chess.InitialPosition())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, len(lines), 18)
	testutil.AssertEqual(t, lines[0], "+---+---+---+---+---+---+---+---+")
	testutil.AssertEqual(t, lines[1], "8 | r | n | b | q | k | b | n | r |")
	testutil.AssertEqual(t, lines[9], "4 |   |   |   |   |   |   |   |   |")
	testutil.AssertEqual(t, lines[15], "1 | R | N | B | Q | K | B | N | R |")
	testutil.AssertEqual(t, lines[17], "    a   b   c   d   e   f   g   h")
}

func TestPrintHistory_BlackFirst(t *testing.T) {
	pos, err := engine.PlayMoves(engine.MustFromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"), "e2e4", "e8d7", "e1d2")
	testutil.AssertNoError(t, err)
	c, out := newTestConsole(t, "", nil)

	c.printHistory(pos.History, 2)
	testutil.AssertEqual(t, out.String(), "Move History (last 2):\n1. ... e8d7\n2. e1d2  \n\n")
}

func TestStartPosition(t *testing.T) {
	pos, err := startPosition("")
	testutil.AssertNoError(t, err)
	testutil.AssertNil(t, pos)

	pos, err = startPosition("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos.ToMove, chess.Black)

	_, err = startPosition("nonsense")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestScanFENs(t *testing.T) {
	input := "# test positions\n" + engine.InitialFEN + "\n\n   \n  8/8/8/8/8/8/k7/K7 w - - 0 1  \n"
	fens, err := scanFENs(strings.NewReader(input))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, fens, []string{engine.InitialFEN, "8/8/8/8/8/8/k7/K7 w - - 0 1"})
}

func TestRunAnalysis(t *testing.T) {
	dir := t.TempDir()
	fenFile := filepath.Join(dir, "positions.fen")
	content := engine.InitialFEN + "\nnot a fen\n"
	if err := os.WriteFile(fenFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.NewConfigBuilder().
			WithOutput(&buf).
			WithJSONOutput(true).
			WithPerftDepth(2).
			WithLogFile(&bytes.Buffer{}).
			Build()
		testutil.AssertNoError(t, runAnalysis(context.Background(), cfg, fenFile))

		var decoded analysis.Output
		testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		testutil.AssertEqual(t, len(decoded.Positions), 2)
		testutil.AssertEqual(t, decoded.Positions[0].Perft, []uint64{20, 400})
		testutil.AssertEqual(t, len(decoded.Positions[0].Moves), 20)
		testutil.AssertContains(t, decoded.Positions[1].Error, "invalid FEN")
	})

	t.Run("text without moves", func(t *testing.T) {
		var buf bytes.Buffer
		var log bytes.Buffer
		cfg := config.NewConfigBuilder().
			WithOutput(&buf).
			WithLogFile(&log).
			Build()
		cfg.Analysis.ListMoves = false
		testutil.AssertNoError(t, runAnalysis(context.Background(), cfg, fenFile))

		testutil.AssertContains(t, buf.String(), "[1] "+engine.InitialFEN+"\n")
		testutil.AssertContains(t, buf.String(), "  20 legal moves\n")
		testutil.AssertContains(t, buf.String(), "[2] not a fen\n  error: ")
		testutil.AssertContains(t, log.String(), "2 position(s) analysed, 1 invalid, 1 unique, 0 duplicate(s).")
	})

	t.Run("interrupted", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.NewConfigBuilder().
			WithOutput(&buf).
			WithLogFile(&bytes.Buffer{}).
			Build()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := runAnalysis(ctx, cfg, fenFile)
		testutil.AssertErrorIs(t, err, context.Canceled)
		testutil.AssertEqual(t, buf.Len(), 0)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := config.NewConfig()
		err := runAnalysis(context.Background(), cfg, filepath.Join(dir, "missing.fen"))
		testutil.AssertTrue(t, os.IsNotExist(err))
	})
}

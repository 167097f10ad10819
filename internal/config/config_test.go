package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/errors"
	"github.com/lgbarn/chess-console-go/internal/testutil"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	testutil.AssertEqual(t, cfg.Verbosity, Normal)
	testutil.AssertTrue(t, cfg.LogFile == os.Stderr, "LogFile should default to stderr")
	testutil.AssertTrue(t, cfg.Output.Writer == os.Stdout, "Output.Writer should default to stdout")
	testutil.AssertEqual(t, cfg.Engine.Path, "stockfish")
	testutil.AssertEqual(t, cfg.Engine.MoveTime, 2*time.Second)
	testutil.AssertEqual(t, cfg.Engine.Depth, 0)
	testutil.AssertEqual(t, cfg.Players.White, HumanPlayer)
	testutil.AssertEqual(t, cfg.Players.Black, EnginePlayer)
	testutil.AssertEqual(t, cfg.Output.DiagramSize, 480)
	testutil.AssertFalse(t, cfg.Output.JSONFormat)
	testutil.AssertEqual(t, cfg.Analysis.Workers, 4)
	testutil.AssertEqual(t, cfg.Analysis.PerftDepth, 0)
	testutil.AssertNoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"silent", func(c *Config) { c.Verbosity = Silent }, false},
		{"verbosity too high", func(c *Config) { c.Verbosity = 3 }, true},
		{"verbosity negative", func(c *Config) { c.Verbosity = -1 }, true},
		{"empty engine path", func(c *Config) { c.Engine.Path = "" }, true},
		{"no time and no depth", func(c *Config) { c.Engine.MoveTime = 0 }, true},
		{"depth instead of time", func(c *Config) { c.Engine.MoveTime = 0; c.Engine.Depth = 8 }, false},
		{"negative depth", func(c *Config) { c.Engine.Depth = -2 }, true},
		{"zero start timeout", func(c *Config) { c.Engine.StartTimeout = 0 }, true},
		{"unknown player", func(c *Config) { c.Players.Black = PlayerKind(7) }, true},
		{"tiny diagram", func(c *Config) { c.Output.DiagramSize = 10 }, true},
		{"huge diagram", func(c *Config) { c.Output.DiagramSize = MaxDiagramSize + 1 }, true},
		{"zero workers", func(c *Config) { c.Analysis.Workers = 0 }, true},
		{"max perft", func(c *Config) { c.Analysis.PerftDepth = MaxPerftDepth }, false},
		{"perft too deep", func(c *Config) { c.Analysis.PerftDepth = MaxPerftDepth + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}

func TestParsePlayerKind(t *testing.T) {
	tests := []struct {
		input   string
		want    PlayerKind
		wantErr bool
	}{
		{"human", HumanPlayer, false},
		{"Engine", EnginePlayer, false},
		{" ENGINE ", EnginePlayer, false},
		{"robot", HumanPlayer, true},
		{"", HumanPlayer, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlayerKind(tt.input)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.String(), map[PlayerKind]string{HumanPlayer: "human", EnginePlayer: "engine"}[tt.want])
		})
	}
}

func TestPlayerConfig_For(t *testing.T) {
	p := PlayerConfig{White: EnginePlayer, Black: HumanPlayer}
	testutil.AssertEqual(t, p.For(chess.White), EnginePlayer)
	testutil.AssertEqual(t, p.For(chess.Black), HumanPlayer)
}

func TestPlayerConfig_NeedsEngine(t *testing.T) {
	cfg := NewConfigBuilder().WithPlayers(HumanPlayer, HumanPlayer).Build()
	testutil.AssertFalse(t, cfg.Players.NeedsEngine())

	cfg.Players.White = EnginePlayer
	testutil.AssertTrue(t, cfg.Players.NeedsEngine())
	blackEngine := PlayerConfig{White: HumanPlayer, Black: EnginePlayer}
	testutil.AssertTrue(t, blackEngine.NeedsEngine())
}

func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	testutil.AssertTrue(t, cfg.Output.Writer == buf, "SetOutput did not set Output.Writer")
}

func TestConfig_Logf(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfigBuilder().WithLogFile(&buf).WithVerbosity(Normal).Build()

	cfg.Logf(Normal, "engine %s ready\n", "FakeFish")
	cfg.Logf(Commentary, "> go movetime 100\n")

	testutil.AssertEqual(t, buf.String(), "engine FakeFish ready\n")

	cfg.LogFile = nil
	cfg.Logf(Silent, "dropped\n")
}

func TestConfigBuilder(t *testing.T) {
	var out, log bytes.Buffer
	cfg := NewConfigBuilder().
		WithEnginePath("/usr/games/stockfish").
		WithMoveTime(500*time.Millisecond).
		WithEngineDepth(12).
		WithPlayers(EnginePlayer, HumanPlayer).
		WithVerbosity(Commentary).
		WithLogFile(&log).
		WithOutput(&out).
		WithJSONOutput(true).
		WithDiagramSize(320).
		WithSVGFile("final.svg").
		WithWorkers(8).
		WithPerftDepth(3).
		Build()

	testutil.AssertEqual(t, cfg.Engine.Path, "/usr/games/stockfish")
	testutil.AssertEqual(t, cfg.Engine.MoveTime, 500*time.Millisecond)
	testutil.AssertEqual(t, cfg.Engine.Depth, 12)
	testutil.AssertEqual(t, cfg.Players, PlayerConfig{White: EnginePlayer, Black: HumanPlayer})
	testutil.AssertEqual(t, cfg.Verbosity, Commentary)
	testutil.AssertTrue(t, cfg.LogFile == &log, "LogFile not set")
	testutil.AssertTrue(t, cfg.Output.Writer == &out, "Output.Writer not set")
	testutil.AssertTrue(t, cfg.Output.JSONFormat)
	testutil.AssertEqual(t, cfg.Output.DiagramSize, 320)
	testutil.AssertEqual(t, cfg.Output.SVGFile, "final.svg")
	testutil.AssertEqual(t, cfg.Analysis.Workers, 8)
	testutil.AssertEqual(t, cfg.Analysis.PerftDepth, 3)
	testutil.AssertNoError(t, cfg.Validate())
}

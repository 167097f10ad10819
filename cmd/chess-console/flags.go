// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-console-go/internal/config"
)

var (
	// Engine options
	enginePath   = flag.String("engine", "stockfish", "UCI engine binary")
	moveTime     = flag.Duration("movetime", 0, "Engine thinking time per move (default 2s)")
	engineDepth  = flag.Int("depth", 0, "Search to a fixed depth instead of using -movetime")
	startTimeout = flag.Duration("starttimeout", 0, "Time allowed for the engine handshake (default 10s)")

	// Players
	whitePlayer = flag.String("white", "", "Who plays White: human or engine (skips the menu)")
	blackPlayer = flag.String("black", "", "Who plays Black: human or engine (skips the menu)")
	startFEN    = flag.String("fen", "", "Start games from this FEN instead of the initial position")

	// Output options
	outputFile  = flag.String("o", "", "Output file for analysis reports (default: stdout)")
	jsonOutput  = flag.Bool("J", false, "Output analysis reports in JSON format")
	svgFile     = flag.String("svg", "", "Write an SVG diagram of the final position to this file")
	diagramSize = flag.Int("size", 0, "SVG diagram size in pixels (default 480)")

	// Batch analysis
	analyseFile = flag.String("analyse", "", "Analyse the FENs in this file (one per line, - for stdin) and exit")
	workers     = flag.Int("workers", 0, "Number of analysis workers (default 4)")
	perftDepth  = flag.Int("perft", 0, "Add perft counts up to this depth to analysis reports")
	noMoveList  = flag.Bool("nomoves", false, "Leave legal move lists out of analysis reports")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", config.Normal, "Verbosity: 0 silent, 1 normal, 2 commentary with engine traffic")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	applyEngineFlags(cfg)
	applyOutputFlags(cfg)
	applyAnalysisFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = config.Silent
	}
	return applyPlayerFlags(cfg)
}

// applyEngineFlags configures the UCI engine. Zero values keep the defaults.
func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.Path = *enginePath
	if *moveTime > 0 {
		cfg.Engine.MoveTime = *moveTime
	}
	if *startTimeout > 0 {
		cfg.Engine.StartTimeout = *startTimeout
	}
	cfg.Engine.Depth = *engineDepth
}

// applyOutputFlags configures report and diagram output.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.SVGFile = *svgFile
	if *diagramSize != 0 {
		cfg.Output.DiagramSize = *diagramSize
	}
}

// applyAnalysisFlags configures batch analysis.
func applyAnalysisFlags(cfg *config.Config) {
	if *workers != 0 {
		cfg.Analysis.Workers = *workers
	}
	cfg.Analysis.PerftDepth = *perftDepth
	cfg.Analysis.ListMoves = !*noMoveList
}

// applyPlayerFlags sets the players from -white and -black. A side without
// a flag keeps its default.
func applyPlayerFlags(cfg *config.Config) error {
	if *whitePlayer != "" {
		kind, err := config.ParsePlayerKind(*whitePlayer)
		if err != nil {
			return err
		}
		cfg.Players.White = kind
	}
	if *blackPlayer != "" {
		kind, err := config.ParsePlayerKind(*blackPlayer)
		if err != nil {
			return err
		}
		cfg.Players.Black = kind
	}
	return nil
}

// playersPreset reports whether the players were chosen on the command line,
// in which case a single game is played without the menu.
func playersPreset() bool {
	return *whitePlayer != "" || *blackPlayer != ""
}

// chess-console plays chess in the terminal between humans and a UCI engine,
// and analyses batches of FEN positions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/config"
	"github.com/lgbarn/chess-console-go/internal/engine"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-console version %s\n", programVersion)
		os.Exit(0)
	}

	os.Exit(run())
}

// run does the work of main and returns the exit status.
func run() int {
	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	closeLog, err := setupLogFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *analyseFile != "" {
		closeOut, err := setupOutputFile(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
			return 1
		}
		defer closeOut()

		if err := runAnalysis(ctx, cfg, *analyseFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	start, err := startPosition(*startFEN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	c := newConsole(cfg, os.Stdin, os.Stdout)
	c.start = start
	defer c.close()

	if playersPreset() {
		c.playGame(ctx, cfg.Players)
	} else {
		c.runMenu(ctx)
	}
	return 0
}

// setupLogFile points the diagnostic stream at the -l file.
func setupLogFile(cfg *config.Config) (func(), error) {
	if *logFile == "" {
		return func() {}, nil
	}
	file, err := os.Create(*logFile)
	if err != nil {
		return nil, err
	}
	cfg.LogFile = file
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// setupOutputFile points report output at the -o file.
func setupOutputFile(cfg *config.Config) (func(), error) {
	if *outputFile == "" {
		return func() {}, nil
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		return nil, err
	}
	cfg.SetOutput(file)
	return func() { file.Close() }, nil //nolint:errcheck,gosec // G104: cleanup on exit
}

// startPosition parses the -fen flag. An empty FEN means the initial
// position.
func startPosition(fen string) (*chess.Position, error) {
	if fen == "" {
		return nil, nil
	}
	return engine.FromFEN(fen)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-console [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess in the terminal against a UCI engine, or analyse FEN positions.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are entered in UCI notation: e2e4, e1g1 (castling), e7e8q (promotion).\n")
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  chess-console -engine /usr/bin/stockfish -movetime 1s\n")
	fmt.Fprintf(os.Stderr, "  chess-console -white engine -black engine -svg final.svg\n")
	fmt.Fprintf(os.Stderr, "  chess-console -analyse positions.fen -perft 3 -J\n")
}

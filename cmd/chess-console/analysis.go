// analysis.go - Batch analysis of FEN positions
package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chess-console-go/internal/analysis"
	"github.com/lgbarn/chess-console-go/internal/config"
)

// runAnalysis analyses every FEN read from path ("-" for stdin) and writes
// the reports to the configured output.
// An interrupted run writes nothing and returns the context's error.
func runAnalysis(ctx context.Context, cfg *config.Config, path string) error {
	fens, err := readFENs(path)
	if err != nil {
		return err
	}

	reports, summary, err := analysis.AnalyzeFENs(ctx, fens, cfg.Analysis.Workers, cfg.Analysis.PerftDepth)
	if err != nil {
		return err
	}
	if !cfg.Analysis.ListMoves {
		for i := range reports {
			reports[i].Moves = nil
		}
	}

	for _, r := range reports {
		if r.Error != "" {
			cfg.Logf(config.Commentary, "position %d: %s\n", r.Index+1, r.Error)
		}
	}
	cfg.Logf(config.Normal, "%d position(s) analysed, %d invalid, %d unique, %d duplicate(s).\n",
		summary.Positions, summary.Invalid, summary.Unique, summary.Duplicates)

	if cfg.Output.JSONFormat {
		return analysis.WriteJSON(cfg.Output.Writer, reports)
	}
	return analysis.WriteText(cfg.Output.Writer, reports)
}

func readFENs(path string) ([]string, error) {
	if path == "-" {
		return scanFENs(os.Stdin)
	}
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck // read-only
	return scanFENs(file)
}

// scanFENs returns one FEN per non-blank line. Lines starting with # are
// comments.
func scanFENs(r io.Reader) ([]string, error) {
	var fens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens, scanner.Err()
}

// Package analysis reports on batches of positions: side to move, game
// status, legal moves, material and optional perft counts.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-console-go/internal/chess"
	"github.com/lgbarn/chess-console-go/internal/engine"
	"github.com/lgbarn/chess-console-go/internal/game"
	"github.com/lgbarn/chess-console-go/internal/hashing"
	"github.com/lgbarn/chess-console-go/internal/worker"
)

// Report is the analysis of one position.
type Report struct {
	Index     int               `json:"index"`
	FEN       string            `json:"fen"`
	Hash      string            `json:"hash,omitempty"` // Zobrist key in hex
	Error     string            `json:"error,omitempty"`
	ToMove    string            `json:"toMove,omitempty"`
	Status    string            `json:"status,omitempty"`
	InCheck   bool              `json:"inCheck,omitempty"`
	MoveCount int               `json:"moveCount"`
	Moves     []string          `json:"moves,omitempty"`
	Material  map[string]int    `json:"material,omitempty"` // FEN letter to count
	Perft     []uint64          `json:"perft,omitempty"`    // leaf nodes at depth 1, 2, ...
	Divide    map[string]uint64 `json:"divide,omitempty"`   // per-move nodes at the deepest depth

	// DuplicateOf is the 1-based number of an earlier report for the same
	// position, ignoring clocks.
	DuplicateOf int `json:"duplicateOf,omitempty"`
}

// Summary counts the outcome of a batch.
type Summary struct {
	Positions  int
	Invalid    int
	Unique     int
	Duplicates int
}

// Output wraps a batch of reports for JSON output.
type Output struct {
	Positions []Report `json:"positions"`
}

// Analyze reports on pos. A perftDepth above zero adds perft counts for
// every depth up to it and a divide at that depth.
func Analyze(pos *chess.Position, perftDepth int) Report {
	r := Report{
		FEN:      engine.ToFEN(pos),
		Hash:     fmt.Sprintf("%016x", hashing.Hash(pos)),
		ToMove:   strings.ToLower(pos.ToMove.String()),
		Status:   game.Evaluate(pos).String(),
		InCheck:  engine.IsKingInCheck(pos, pos.ToMove),
		Moves:    engine.LegalMoveStrings(pos),
		Material: material(pos),
	}
	r.MoveCount = len(r.Moves)

	if perftDepth > 0 {
		r.Perft = make([]uint64, 0, perftDepth)
		for depth := 1; depth <= perftDepth; depth++ {
			r.Perft = append(r.Perft, engine.Perft(pos, depth))
		}
		r.Divide = engine.PerftDivide(pos, perftDepth)
	}
	return r
}

func material(pos *chess.Position) map[string]int {
	counts := make(map[string]int)
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := pos.Squares[row][col]; !p.IsEmpty() {
				counts[string(p.FENLetter())]++
			}
		}
	}
	return counts
}

// AnalyzeFENs analyses every FEN on a pool of workers. Reports come back in
// input order; a FEN that does not parse gets a report carrying only the
// error. A position seen earlier in the batch is marked with DuplicateOf.
// If ctx ends first the unanalysed positions are reported with its error,
// which is also returned.
func AnalyzeFENs(ctx context.Context, fens []string, workers, perftDepth int) ([]Report, Summary, error) {
	process := func(item worker.WorkItem) worker.Result {
		res := worker.Result{Index: item.Index, FEN: item.FEN}
		pos, err := engine.FromFEN(item.FEN)
		if err != nil {
			res.Err = err
			return res
		}
		res.Position = pos
		res.Payload = Analyze(pos, perftDepth)
		return res
	}

	results, err := worker.Run(ctx, fens, process, worker.WithWorkers(workers), worker.WithBufferSize(workers*2))

	detector := hashing.NewDuplicateDetector()
	summary := Summary{Positions: len(results)}
	reports := make([]Report, len(results))
	for i, res := range results {
		var r Report
		if res.Err != nil {
			r = Report{FEN: res.FEN, Error: res.Err.Error()}
			summary.Invalid++
		} else {
			r = res.Payload.(Report)
			if first, dup := detector.CheckAndAdd(res.Position, i); dup {
				r.DuplicateOf = first + 1
			}
		}
		r.Index = i
		reports[i] = r
	}
	summary.Unique = detector.UniqueCount()
	summary.Duplicates = detector.DuplicateCount()
	return reports, summary, err
}

// WriteJSON writes reports as an indented JSON document.
func WriteJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&Output{Positions: reports})
}

// WriteText writes reports in a plain layout, one block per position.
func WriteText(w io.Writer, reports []Report) error {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%d] %s\n", r.Index+1, r.FEN)
		if r.Error != "" {
			fmt.Fprintf(&sb, "  error: %s\n", r.Error)
			continue
		}
		fmt.Fprintf(&sb, "  %s to move, %s\n", r.ToMove, r.Status)
		if r.DuplicateOf > 0 {
			fmt.Fprintf(&sb, "  same position as [%d]\n", r.DuplicateOf)
		}
		fmt.Fprintf(&sb, "  material: %s\n", formatMaterial(r.Material))
		if len(r.Moves) > 0 {
			fmt.Fprintf(&sb, "  %d legal moves: %s\n", r.MoveCount, strings.Join(r.Moves, " "))
		} else {
			fmt.Fprintf(&sb, "  %d legal moves\n", r.MoveCount)
		}
		for depth, nodes := range r.Perft {
			fmt.Fprintf(&sb, "  perft(%d) = %d\n", depth+1, nodes)
		}
		if len(r.Divide) > 0 {
			moves := maps.Keys(r.Divide)
			slices.Sort(moves)
			for _, m := range moves {
				fmt.Fprintf(&sb, "    %s: %d\n", m, r.Divide[m])
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// formatMaterial lists White's pieces then Black's, kings first.
func formatMaterial(counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for _, letter := range "KQRBNPkqrbnp" {
		if n := counts[string(letter)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%c%d", letter, n))
		}
	}
	return strings.Join(parts, " ")
}

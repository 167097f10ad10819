package config

// MaxPerftDepth keeps batch perft runs to seconds rather than hours.
const MaxPerftDepth = 6

// AnalysisConfig holds settings for batch position analysis.
type AnalysisConfig struct {
	Workers    int
	PerftDepth int  // 0 disables perft
	ListMoves  bool // include every legal move in reports
}

// NewAnalysisConfig creates an AnalysisConfig with default values.
func NewAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{Workers: 4, ListMoves: true}
}

// Validate checks the worker count and perft depth.
func (a *AnalysisConfig) Validate() error {
	if a.Workers < 1 {
		return invalid("workers must be at least 1, got %d", a.Workers)
	}
	if a.PerftDepth < 0 || a.PerftDepth > MaxPerftDepth {
		return invalid("perft depth %d outside 0-%d", a.PerftDepth, MaxPerftDepth)
	}
	return nil
}

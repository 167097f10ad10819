package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config. It is not validated.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithEnginePath sets the UCI engine binary.
func (b *ConfigBuilder) WithEnginePath(path string) *ConfigBuilder {
	b.cfg.Engine.Path = path
	return b
}

// WithMoveTime sets the engine's thinking time per move.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTime = d
	return b
}

// WithEngineDepth makes the engine search to a fixed depth.
func (b *ConfigBuilder) WithEngineDepth(depth int) *ConfigBuilder {
	b.cfg.Engine.Depth = depth
	return b
}

// WithPlayers sets who plays each colour.
func (b *ConfigBuilder) WithPlayers(white, black PlayerKind) *ConfigBuilder {
	b.cfg.Players.White = white
	b.cfg.Players.Black = black
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithLogFile sets the diagnostic stream.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.Output.Writer = w
	return b
}

// WithJSONOutput enables JSON analysis reports.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithDiagramSize sets the SVG diagram size in pixels.
func (b *ConfigBuilder) WithDiagramSize(size int) *ConfigBuilder {
	b.cfg.Output.DiagramSize = size
	return b
}

// WithSVGFile writes a diagram of the final position to path.
func (b *ConfigBuilder) WithSVGFile(path string) *ConfigBuilder {
	b.cfg.Output.SVGFile = path
	return b
}

// WithWorkers sets the number of batch analysis workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Analysis.Workers = n
	return b
}

// WithPerftDepth enables perft counts to depth in batch analysis.
func (b *ConfigBuilder) WithPerftDepth(depth int) *ConfigBuilder {
	b.cfg.Analysis.PerftDepth = depth
	return b
}

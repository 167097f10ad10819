// Package config holds the program configuration for chess-console.
package config

import (
	"fmt"
	"io"
	"os"
)

// Verbosity levels.
const (
	Silent     = 0 // no diagnostics
	Normal     = 1 // game events and errors
	Commentary = 2 // running commentary including engine traffic
)

// Config holds all program configuration.
type Config struct {
	Verbosity int
	LogFile   io.Writer

	Engine   EngineConfig
	Players  PlayerConfig
	Output   OutputConfig
	Analysis AnalysisConfig
}

// NewConfig creates a Config with default values: a human playing White
// against stockfish, two seconds per engine move.
func NewConfig() *Config {
	return &Config{
		Verbosity: Normal,
		LogFile:   os.Stderr,
		Engine:    *NewEngineConfig(),
		Players:   *NewPlayerConfig(),
		Output:    *NewOutputConfig(),
		Analysis:  *NewAnalysisConfig(),
	}
}

// Validate checks every section and returns the first problem found.
// All errors wrap errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Verbosity < Silent || c.Verbosity > Commentary {
		return invalid("verbosity %d out of range %d-%d", c.Verbosity, Silent, Commentary)
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Players.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Analysis.Validate()
}

// SetOutput sets the writer results are printed to.
func (c *Config) SetOutput(w io.Writer) {
	c.Output.Writer = w
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}


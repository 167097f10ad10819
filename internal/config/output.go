package config

import (
	"io"
	"os"
)

// Diagram size bounds in pixels.
const (
	MinDiagramSize = 160
	MaxDiagramSize = 4096
)

// OutputConfig holds settings related to what is printed and written.
type OutputConfig struct {
	// Writer receives the board, move lists and analysis reports
	Writer io.Writer

	// JSONFormat prints analysis reports as JSON instead of text
	JSONFormat bool

	// DiagramSize is the width and height of SVG diagrams
	DiagramSize int

	// SVGFile receives a diagram of the final position when non-empty
	SVGFile string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Writer:      os.Stdout,
		DiagramSize: 480,
	}
}

// Validate checks the diagram size.
func (o *OutputConfig) Validate() error {
	if o.DiagramSize < MinDiagramSize || o.DiagramSize > MaxDiagramSize {
		return invalid("diagram size %d outside %d-%d", o.DiagramSize, MinDiagramSize, MaxDiagramSize)
	}
	return nil
}

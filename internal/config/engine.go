package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-console-go/internal/errors"
)

// EngineConfig holds settings for the external UCI engine.
type EngineConfig struct {
	// Path is the engine binary, looked up in PATH if not absolute
	Path string

	// MoveTime is how long the engine thinks per move
	MoveTime time.Duration

	// Depth searches to a fixed depth instead of MoveTime when > 0
	Depth int

	// StartTimeout bounds the uci/isready handshake
	StartTimeout time.Duration
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Path:         "stockfish",
		MoveTime:     2 * time.Second,
		StartTimeout: 10 * time.Second,
	}
}

// Validate checks that the engine configuration is usable.
func (e *EngineConfig) Validate() error {
	switch {
	case e.Path == "":
		return invalid("engine path is empty")
	case e.MoveTime <= 0 && e.Depth <= 0:
		return invalid("engine needs a positive move time or depth")
	case e.Depth < 0:
		return invalid("engine depth %d is negative", e.Depth)
	case e.StartTimeout <= 0:
		return invalid("engine start timeout %v is not positive", e.StartTimeout)
	}
	return nil
}

// invalid builds an error wrapping ErrInvalidConfig.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errors.ErrInvalidConfig)
}

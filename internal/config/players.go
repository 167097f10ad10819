package config

import (
	"strings"

	"github.com/lgbarn/chess-console-go/internal/chess"
)

// PlayerKind says who makes the moves for one side.
type PlayerKind int

const (
	HumanPlayer PlayerKind = iota
	EnginePlayer
)

func (k PlayerKind) String() string {
	switch k {
	case HumanPlayer:
		return "human"
	case EnginePlayer:
		return "engine"
	default:
		return "unknown"
	}
}

// ParsePlayerKind accepts "human" or "engine" in any case.
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return HumanPlayer, nil
	case "engine":
		return EnginePlayer, nil
	}
	return HumanPlayer, invalid("unknown player %q (want human or engine)", s)
}

// PlayerConfig assigns a player to each colour.
type PlayerConfig struct {
	White PlayerKind
	Black PlayerKind
}

// NewPlayerConfig creates a PlayerConfig with a human as White and the
// engine as Black.
func NewPlayerConfig() *PlayerConfig {
	return &PlayerConfig{White: HumanPlayer, Black: EnginePlayer}
}

// NeedsEngine reports whether either side is played by the UCI engine.
func (p *PlayerConfig) NeedsEngine() bool {
	return p.White == EnginePlayer || p.Black == EnginePlayer
}

// For returns the player of colour.
func (p *PlayerConfig) For(colour chess.Colour) PlayerKind {
	if colour == chess.Black {
		return p.Black
	}
	return p.White
}

// Validate checks that both kinds are known.
func (p *PlayerConfig) Validate() error {
	for _, k := range []PlayerKind{p.White, p.Black} {
		if k != HumanPlayer && k != EnginePlayer {
			return invalid("player kind %d", int(k))
		}
	}
	return nil
}

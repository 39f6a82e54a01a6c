package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MaxPerftDepth bounds the search so a typo cannot run for days.
const MaxPerftDepth = 10

// PerftConfig holds settings for a perft run.
type PerftConfig struct {
	FEN     string
	Depth   int
	Workers int
	Divide  bool
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		FEN:     engine.InitialFEN,
		Depth:   4,
		Workers: runtime.NumCPU(),
	}
}

// Validate checks that the perft configuration is valid.
func (p *PerftConfig) Validate() error {
	if p.Depth < 1 || p.Depth > MaxPerftDepth {
		return fmt.Errorf("depth %d outside 1..%d: %w", p.Depth, MaxPerftDepth, errors.ErrInvalidConfig)
	}
	if p.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", p.Workers, errors.ErrInvalidConfig)
	}
	if _, err := engine.NewGameFromFEN(p.FEN); err != nil {
		return fmt.Errorf("start position: %v: %w", err, errors.ErrInvalidConfig)
	}
	return nil
}

// Package testutil provides shared test helpers for packages built on the
// rules engine.
package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Well-known lines, as UCI moves from the initial position.
var (
	FoolsMate    = []string{"f2f3", "e7e5", "g2g4", "d8h4"}
	ScholarsMate = []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}
)

// MustGame loads a FEN position. It calls t.Fatal if the FEN is rejected.
func MustGame(t testing.TB, fen string) *engine.GameState {
	t.Helper()
	s, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
	}
	return s
}

// PlayMoves applies UCI moves in order and returns the final status.
// It calls t.Fatal on the first rejected move.
func PlayMoves(t testing.TB, s *engine.GameState, moves ...string) chess.Status {
	t.Helper()
	status := s.Status()
	for _, m := range moves {
		var err error
		if status, err = s.ApplyUCI(m); err != nil {
			t.Fatalf("ApplyUCI(%q) at ply %d error: %v", m, s.Ply()+1, err)
		}
	}
	return status
}

// MustPlay starts from fen and plays moves.
func MustPlay(t testing.TB, fen string, moves ...string) *engine.GameState {
	t.Helper()
	s := MustGame(t, fen)
	PlayMoves(t, s, moves...)
	return s
}

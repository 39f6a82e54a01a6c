package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ParseUCIMove parses long algebraic move text ("e2e4", "e7e8q") into a
// move request. It checks syntax only; legality is decided by Apply.
func ParseUCIMove(text string) (chess.MoveRequest, error) {
	return chess.ParseMoveRequest(text)
}

// UCIMoves returns the moves as sorted long algebraic strings.
func UCIMoves(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	slices.Sort(out)
	return out
}

// LegalUCIMoves returns the sorted long algebraic text of every legal move.
func LegalUCIMoves(s *GameState) []string {
	return UCIMoves(LegalMoves(s))
}

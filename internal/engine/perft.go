package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// DivideEntry is the leaf count below one root move.
type DivideEntry struct {
	Move  chess.Move
	Nodes uint64
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Status is not evaluated along the way, so draw rules do not cut the tree.
func Perft(s *GameState, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(s)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		s.applyMove(m)
		nodes += Perft(s, depth-1)
		s.undoMove()
	}
	return nodes
}

// Divide runs Perft below each root move, splitting the root moves across
// the given number of workers. Each worker searches its own clone of s.
func Divide(s *GameState, depth, workers int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	roots := LegalMoves(s)

	entries, _ := worker.Map(roots, workers, func(m chess.Move) (DivideEntry, error) {
		c := s.Clone()
		c.applyMove(m)
		return DivideEntry{Move: m, Nodes: Perft(c, depth-1)}, nil
	})
	return entries
}

// DivideTotal sums the node counts of a Divide result.
func DivideTotal(entries []DivideEntry) uint64 {
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return total
}

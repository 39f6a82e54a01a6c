// Package hashing provides position signatures for repetition detection.
package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Zobrist keys, generated from a fixed seed so signatures are reproducible
// across runs.
var (
	zobristPiece      [2][chess.NumPieceValues][chess.NumSquares]uint64
	zobristEnPassant  [chess.BoardSize]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	rng := prng{state: 0x98F107A2BEEF1234}

	for c := range zobristPiece {
		for p := chess.Pawn; p < chess.NumPieceValues; p++ {
			for sq := range zobristPiece[c][p] {
				zobristPiece[c][p][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// prng is an xorshift64* generator.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// PlacementHash hashes piece placement only.
func PlacementHash(board *chess.Board) uint64 {
	var hash uint64
	for sq, piece := range board.Squares {
		if piece.IsEmpty() {
			continue
		}
		hash ^= zobristPiece[piece.Colour][piece.Kind][sq]
	}
	return hash
}

// Signature hashes everything that makes two positions the same for the
// repetition rule: placement, side to move, castling rights and the
// en-passant target (pass NoSquare when no en-passant capture is possible).
func Signature(board *chess.Board, toMove chess.Colour, rights chess.CastlingRights, enPassant chess.Square) uint64 {
	hash := PlacementHash(board)
	if toMove == chess.Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[rights&chess.AllCastling]
	if enPassant != chess.NoSquare {
		hash ^= zobristEnPassant[enPassant.File()]
	}
	return hash
}

// RepetitionTable counts how often each position signature has occurred
// along the current line of play. Positions are pushed as moves are made and
// popped on undo.
type RepetitionTable struct {
	// counts stores occurrences per signature
	counts map[uint64]int
	// line is the signature of every position in play order
	line []uint64
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

// Push records a position and returns how many times it has now occurred.
func (t *RepetitionTable) Push(sig uint64) int {
	t.line = append(t.line, sig)
	t.counts[sig]++
	return t.counts[sig]
}

// Pop forgets the most recently pushed position.
func (t *RepetitionTable) Pop() {
	if len(t.line) == 0 {
		return
	}
	sig := t.line[len(t.line)-1]
	t.line = t.line[:len(t.line)-1]
	if t.counts[sig]--; t.counts[sig] <= 0 {
		delete(t.counts, sig)
	}
}

// Count returns the number of occurrences of a signature.
func (t *RepetitionTable) Count(sig uint64) int {
	return t.counts[sig]
}

// Len returns the number of positions recorded.
func (t *RepetitionTable) Len() int {
	return len(t.line)
}

// UniqueCount returns the number of distinct positions recorded.
func (t *RepetitionTable) UniqueCount() int {
	return len(t.counts)
}

// Clone returns an independent copy of the table.
func (t *RepetitionTable) Clone() *RepetitionTable {
	c := &RepetitionTable{
		counts: make(map[uint64]int, len(t.counts)),
		line:   append([]uint64(nil), t.line...),
	}
	for sig, n := range t.counts {
		c.counts[sig] = n
	}
	return c
}

package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Square is a flat board index: rank*8 + file, a1 = 0, h8 = 63.
type Square int8

// NoSquare marks an absent square (e.g. no en-passant target).
const NoSquare Square = -1

// Named squares used at the parsing boundary and in tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from file and rank indices (0-7).
// It returns NoSquare when either coordinate is off the board.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// File returns the file index (0 = a).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the rank index (0 = rank 1).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Valid returns true if s is one of the 64 board squares.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Offset returns the square df files and dr ranks away, or NoSquare.
func (s Square) Offset(df, dr int) Square {
	return NewSquare(s.File()+df, s.Rank()+dr)
}

// IsLight returns true if the square is a light square.
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 1
}

// String returns the algebraic name ("e4"), or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare converts an algebraic square name such as "e4" or "E4".
func ParseSquare(name string) (Square, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	file, rank := int(name[0])-'a', int(name[1])-'1'
	sq := NewSquare(file, rank)
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// ParsePromotion converts a promotion letter (q, r, b, n; either case).
// The empty string means no promotion was requested.
func ParsePromotion(letter string) (Piece, error) {
	switch strings.ToLower(strings.TrimSpace(letter)) {
	case "":
		return NoPiece, nil
	case "q":
		return Queen, nil
	case "r":
		return Rook, nil
	case "b":
		return Bishop, nil
	case "n":
		return Knight, nil
	default:
		return NoPiece, fmt.Errorf("promotion %q: %w", letter, errors.ErrInvalidMove)
	}
}

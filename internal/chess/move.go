package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MoveFlag marks the special properties of a generated move.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagCastleKingside
	FlagCastleQueenside
	FlagDoublePush

	NoFlags MoveFlag = 0
)

// Move represents a single generated chess move.
type Move struct {
	// Source square.
	From Square

	// Destination square.
	To Square

	// The piece promoted to (NoPiece if not a promotion).
	Promotion Piece

	// Capture, en passant, castling and double push markers.
	Flags MoveFlag
}

// MoveRequest is what an input collaborator hands to the engine: a
// syntactically valid square pair and an optional promotion piece.
type MoveRequest struct {
	From      Square
	To        Square
	Promotion Piece
}

// Has returns true if every flag in f is set.
func (m Move) Has(f MoveFlag) bool {
	return m.Flags&f == f
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return m.Has(FlagCapture) || m.Has(FlagEnPassant)
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPiece
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flags&(FlagCastleKingside|FlagCastleQueenside) != 0
}

// Matches reports whether the move answers the given request.
func (m Move) Matches(req MoveRequest) bool {
	return m.From == req.From && m.To == req.To && m.Promotion == req.Promotion
}

// Request returns the request that selects this move.
func (m Move) Request() MoveRequest {
	return MoveRequest{From: m.From, To: m.To, Promotion: m.Promotion}
}

// UCI returns the move in long algebraic notation ("e2e4", "e7e8q").
func (m Move) UCI() string {
	return m.Request().String()
}

// String is the UCI text of the request.
func (r MoveRequest) String() string {
	s := r.From.String() + r.To.String()
	if r.Promotion != NoPiece {
		s += string(r.Promotion.Letter() + ('a' - 'A'))
	}
	return s
}

// ParseMoveRequest parses long algebraic move text: "e2e4", "e7e8q", and the
// looser "e2 e4", "e2-e4" and "e7e8=Q" forms typed by people.
func ParseMoveRequest(text string) (MoveRequest, error) {
	clean := strings.NewReplacer(" ", "", "-", "", "=", "").Replace(strings.TrimSpace(text))
	if len(clean) != 4 && len(clean) != 5 {
		return MoveRequest{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidMove)
	}

	from, err := ParseSquare(clean[0:2])
	if err != nil {
		return MoveRequest{}, fmt.Errorf("move %q: %w", text, err)
	}
	to, err := ParseSquare(clean[2:4])
	if err != nil {
		return MoveRequest{}, fmt.Errorf("move %q: %w", text, err)
	}
	promotion, err := ParsePromotion(clean[4:])
	if err != nil {
		return MoveRequest{}, err
	}
	return MoveRequest{From: from, To: to, Promotion: promotion}, nil
}

// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int8

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index (0-7) of the colour.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// Piece represents a chess piece type, independent of colour.
type Piece int8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// IsSlider returns true for bishops, rooks and queens.
func (p Piece) IsSlider() bool {
	return p == Bishop || p == Rook || p == Queen
}

// PromotionPieces lists the pieces a pawn may promote to.
var PromotionPieces = [...]Piece{Queen, Rook, Bishop, Knight}

// IsPromotionPiece returns true if a pawn may promote to p.
func IsPromotionPiece(p Piece) bool {
	for _, q := range PromotionPieces {
		if p == q {
			return true
		}
	}
	return false
}

// ColouredPiece is the content of a square: a piece kind and its colour.
// The zero value is an empty square.
type ColouredPiece struct {
	Kind   Piece
	Colour Colour
}

// Empty is the content of an unoccupied square.
var Empty = ColouredPiece{}

// W creates a white piece.
func W(piece Piece) ColouredPiece {
	return ColouredPiece{Kind: piece, Colour: White}
}

// B creates a black piece.
func B(piece Piece) ColouredPiece {
	return ColouredPiece{Kind: piece, Colour: Black}
}

// IsEmpty returns true if no piece is present.
func (cp ColouredPiece) IsEmpty() bool {
	return cp.Kind == NoPiece
}

// Is reports whether cp is a piece of the given colour and kind.
func (cp ColouredPiece) Is(colour Colour, kind Piece) bool {
	return cp.Kind == kind && cp.Colour == colour
}

// BelongsTo reports whether cp is a piece owned by colour.
func (cp ColouredPiece) BelongsTo(colour Colour) bool {
	return cp.Kind != NoPiece && cp.Colour == colour
}

// FENLetter returns the FEN letter of the piece: uppercase for White,
// lowercase for Black. Empty squares return '.'.
func (cp ColouredPiece) FENLetter() byte {
	if cp.IsEmpty() {
		return '.'
	}
	letter := cp.Kind.Letter()
	if cp.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String returns a short name such as "White Knight".
func (cp ColouredPiece) String() string {
	if cp.IsEmpty() {
		return "Empty"
	}
	return cp.Colour.String() + " " + cp.Kind.String()
}

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Kingside returns the kingside right for colour.
func Kingside(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// Queenside returns the queenside right for colour.
func Queenside(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// Has returns true if all rights in r are present.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r
}

// String renders the rights the way FEN does ("KQkq" or "-").
func (c CastlingRights) String() string {
	if c == NoCastling {
		return "-"
	}
	var b []byte
	if c.Has(WhiteKingside) {
		b = append(b, 'K')
	}
	if c.Has(WhiteQueenside) {
		b = append(b, 'Q')
	}
	if c.Has(BlackKingside) {
		b = append(b, 'k')
	}
	if c.Has(BlackQueenside) {
		b = append(b, 'q')
	}
	return string(b)
}

// Status classifies a position after a move has been applied.
type Status int8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawRepetition
	DrawInsufficientMaterial
)

// String returns the status in kebab-case ("draw-by-repetition").
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "draw-by-fifty-move"
	case DrawRepetition:
		return "draw-by-repetition"
	case DrawInsufficientMaterial:
		return "draw-by-insufficient-material"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the game is over in this status.
func (s Status) IsTerminal() bool {
	switch s {
	case Checkmate, Stalemate, DrawFiftyMove, DrawRepetition, DrawInsufficientMaterial:
		return true
	default:
		return false
	}
}

// IsDraw returns true for stalemate and every draw-by rule.
func (s Status) IsDraw() bool {
	return s.IsTerminal() && s != Checkmate
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

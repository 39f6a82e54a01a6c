package chess

// Board holds piece placement. Side to move, castling rights and clocks
// belong to the game state that owns the board.
type Board struct {
	Squares [NumSquares]ColouredPiece

	// Keep track of where the two kings are for check detection.
	// NoSquare when the colour has no king on the board.
	kings [2]Square
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{kings: [2]Square{NoSquare, NoSquare}}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()

	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.Set(NewSquare(file, 0), W(backRank[file]))
		b.Set(NewSquare(file, 1), W(Pawn))
		b.Set(NewSquare(file, 6), B(Pawn))
		b.Set(NewSquare(file, 7), B(backRank[file]))
	}
}

// Clear removes every piece.
func (b *Board) Clear() {
	b.Squares = [NumSquares]ColouredPiece{}
	b.kings = [2]Square{NoSquare, NoSquare}
}

// Get returns the content of a square. Off-board squares read as empty.
func (b *Board) Get(sq Square) ColouredPiece {
	if !sq.Valid() {
		return Empty
	}
	return b.Squares[sq]
}

// Set places a piece (or Empty) on a square, keeping king locations current.
func (b *Board) Set(sq Square, piece ColouredPiece) {
	if !sq.Valid() {
		return
	}
	old := b.Squares[sq]
	if old.Kind == King && b.kings[old.Colour] == sq {
		b.kings[old.Colour] = NoSquare
	}
	b.Squares[sq] = piece
	if piece.Kind == King {
		b.kings[piece.Colour] = sq
	}
}

// Move relocates whatever stands on from to to and returns the piece
// previously standing on to.
func (b *Board) Move(from, to Square) ColouredPiece {
	captured := b.Get(to)
	piece := b.Get(from)
	b.Set(from, Empty)
	b.Set(to, piece)
	return captured
}

// KingSquare returns the square of the colour's king, or NoSquare.
func (b *Board) KingSquare(colour Colour) Square {
	if sq := b.kings[colour]; sq != NoSquare && b.Squares[sq].Is(colour, King) {
		return sq
	}
	// Fall back to a scan if the cache is stale.
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq].Is(colour, King) {
			b.kings[colour] = sq
			return sq
		}
	}
	return NoSquare
}

// Count returns the number of pieces of the given colour and kind.
func (b *Board) Count(colour Colour, kind Piece) int {
	n := 0
	for _, cp := range b.Squares {
		if cp.Is(colour, kind) {
			n++
		}
	}
	return n
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Equal reports whether two boards have identical placement.
func (b *Board) Equal(other *Board) bool {
	return b.Squares == other.Squares
}

package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// GameState is one game: the board plus everything the rules need that the
// placement alone does not record. Each GameState is independent; callers
// sharing one across goroutines must serialize access themselves.
type GameState struct {
	board *chess.Board

	// Who has the next move.
	toMove chess.Colour

	castling chess.CastlingRights

	// The square a pawn skipped on the previous half-move, or NoSquare.
	enPassant chess.Square

	// The half-move clock since the last pawn move or capture.
	halfmoveClock uint

	// The current move number, incremented after Black moves.
	fullmoveNumber uint

	status chess.Status

	history     []historyEntry
	repetitions *hashing.RepetitionTable
}

// historyEntry is everything needed to take a move back.
type historyEntry struct {
	move          chess.Move
	moved         chess.ColouredPiece
	captured      chess.ColouredPiece
	capturedOn    chess.Square
	castling      chess.CastlingRights
	enPassant     chess.Square
	halfmoveClock uint
	fullmove      uint
	status        chess.Status
}

// Snapshot is a read-only view of a game for rendering collaborators.
type Snapshot struct {
	Board          chess.Board
	ToMove         chess.Colour
	Status         chess.Status
	Castling       chess.CastlingRights
	EnPassant      chess.Square
	HalfmoveClock  uint
	FullmoveNumber uint
	LastMove       *chess.Move
}

// NewGame returns a game at the standard starting position.
func NewGame() *GameState {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	s := &GameState{
		board:          board,
		toMove:         chess.White,
		castling:       chess.AllCastling,
		enPassant:      chess.NoSquare,
		fullmoveNumber: 1,
	}
	s.resetRepetitions()
	s.status = s.evaluateStatus()
	return s
}

// resetRepetitions starts repetition tracking from the current position.
func (s *GameState) resetRepetitions() {
	s.repetitions = hashing.NewRepetitionTable()
	s.repetitions.Push(s.signature())
}

// signature identifies the position for repetition purposes.
func (s *GameState) signature() uint64 {
	return hashing.Signature(s.board, s.toMove, s.castling, s.capturableEnPassant())
}

// capturableEnPassant returns the en-passant target only when a pawn of the
// side to move stands ready to capture onto it; otherwise NoSquare.
func (s *GameState) capturableEnPassant() chess.Square {
	if s.enPassant == chess.NoSquare {
		return chess.NoSquare
	}
	behind := -s.toMove.Forward()
	for _, df := range [2]int{-1, 1} {
		if s.board.Get(s.enPassant.Offset(df, behind)).Is(s.toMove, chess.Pawn) {
			return s.enPassant
		}
	}
	return chess.NoSquare
}

// Board returns a copy of the current placement.
func (s *GameState) Board() chess.Board {
	return *s.board
}

// ToMove returns the side to move.
func (s *GameState) ToMove() chess.Colour {
	return s.toMove
}

// CastlingRights returns the castling options still available.
func (s *GameState) CastlingRights() chess.CastlingRights {
	return s.castling
}

// EnPassantTarget returns the current en-passant target, or NoSquare.
func (s *GameState) EnPassantTarget() chess.Square {
	return s.enPassant
}

// HalfmoveClock returns the plies since the last pawn move or capture.
func (s *GameState) HalfmoveClock() uint {
	return s.halfmoveClock
}

// FullmoveNumber returns the current move number.
func (s *GameState) FullmoveNumber() uint {
	return s.fullmoveNumber
}

// Status returns the classification of the current position.
func (s *GameState) Status() chess.Status {
	return s.status
}

// IsOver returns true once the game has reached a terminal status.
func (s *GameState) IsOver() bool {
	return s.status.IsTerminal()
}

// Ply returns the number of half-moves played in this game.
func (s *GameState) Ply() int {
	return len(s.history)
}

// History returns the moves played so far, oldest first.
func (s *GameState) History() []chess.Move {
	moves := make([]chess.Move, len(s.history))
	for i, h := range s.history {
		moves[i] = h.move
	}
	return moves
}

// LastMove returns the most recent move, or nil at the start of the game.
func (s *GameState) LastMove() *chess.Move {
	if len(s.history) == 0 {
		return nil
	}
	m := s.history[len(s.history)-1].move
	return &m
}

// Repetitions returns how many times the current position has occurred.
func (s *GameState) Repetitions() int {
	return s.repetitions.Count(s.signature())
}

// Snapshot captures the state a renderer needs.
func (s *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:          *s.board,
		ToMove:         s.toMove,
		Status:         s.status,
		Castling:       s.castling,
		EnPassant:      s.enPassant,
		HalfmoveClock:  s.halfmoveClock,
		FullmoveNumber: s.fullmoveNumber,
		LastMove:       s.LastMove(),
	}
}

// Clone creates a deep copy of the game, history included.
func (s *GameState) Clone() *GameState {
	c := *s
	c.board = s.board.Copy()
	c.history = append([]historyEntry(nil), s.history...)
	c.repetitions = s.repetitions.Clone()
	return &c
}

package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Apply validates a requested move against the legal move set and, if it is
// legal, plays it and returns the resulting status. On error the game is left
// unmodified. A pawn reaching the back rank without a promotion piece
// promotes to a queen.
func (s *GameState) Apply(req chess.MoveRequest) (chess.Status, error) {
	move, err := s.validate(req)
	if err != nil {
		return s.status, &errors.MoveError{Err: err, Move: req.String(), Ply: len(s.history) + 1}
	}

	s.applyMove(move)
	s.status = s.evaluateStatus()
	return s.status, nil
}

// ApplyMove is the functional form of GameState.Apply.
func ApplyMove(s *GameState, req chess.MoveRequest) (chess.Status, error) {
	return s.Apply(req)
}

// ApplyUCI parses long algebraic move text ("e2e4", "e7e8q") and applies it.
func (s *GameState) ApplyUCI(text string) (chess.Status, error) {
	req, err := chess.ParseMoveRequest(text)
	if err != nil {
		return s.status, err
	}
	return s.Apply(req)
}

// validate finds the legal move matching the request.
func (s *GameState) validate(req chess.MoveRequest) (chess.Move, error) {
	if s.status.IsTerminal() {
		return chess.Move{}, errors.ErrGameAlreadyOver
	}

	piece := s.board.Get(req.From)
	if piece.IsEmpty() {
		return chess.Move{}, errors.ErrNoPieceAtSource
	}
	if piece.Colour != s.toMove {
		return chess.Move{}, errors.ErrWrongTurn
	}

	if req.Promotion == chess.NoPiece && isPawnPromotion(piece, req.To) {
		req.Promotion = chess.Queen
	}
	for _, m := range LegalMovesFrom(s, req.From) {
		if m.Matches(req) {
			return m, nil
		}
	}
	return chess.Move{}, errors.ErrNotInLegalSet
}

// placeMove performs the placement side of a move on board: the piece
// itself, the en-passant victim, the castling rook and promotion. It returns
// the captured piece and the square it stood on.
func placeMove(board *chess.Board, m chess.Move) (chess.ColouredPiece, chess.Square) {
	captured, capturedOn := board.Get(m.To), m.To

	// Handle en passant capture: the victim is beside, not on, the target.
	if m.Has(chess.FlagEnPassant) {
		capturedOn = enPassantVictim(m)
		captured = board.Get(capturedOn)
		board.Set(capturedOn, chess.Empty)
	}

	piece := board.Get(m.From)
	board.Set(m.From, chess.Empty)
	if m.Promotion != chess.NoPiece {
		piece.Kind = m.Promotion
	}
	board.Set(m.To, piece)

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		board.Move(rookFrom, rookTo)
	}

	if captured.IsEmpty() {
		capturedOn = chess.NoSquare
	}
	return captured, capturedOn
}

// applyMove plays a move already known to be legal and records how to undo
// it. It is the only code that mutates a GameState's position. The status is
// left for the caller to re-evaluate.
func (s *GameState) applyMove(m chess.Move) {
	colour := s.toMove
	moved := s.board.Get(m.From)

	entry := historyEntry{
		move:          m,
		moved:         moved,
		castling:      s.castling,
		enPassant:     s.enPassant,
		halfmoveClock: s.halfmoveClock,
		fullmove:      s.fullmoveNumber,
		status:        s.status,
	}
	entry.captured, entry.capturedOn = placeMove(s.board, m)

	// Moving a king or rook, or capturing a rook, revokes rights for good.
	s.castling &^= rightsLostAt(m.From) | rightsLostAt(m.To)

	// Set en passant square only after a double pawn push
	s.enPassant = chess.NoSquare
	if m.Has(chess.FlagDoublePush) {
		s.enPassant = m.From.Offset(0, colour.Forward())
	}

	if moved.Kind == chess.Pawn || !entry.captured.IsEmpty() {
		s.halfmoveClock = 0
	} else {
		s.halfmoveClock++
	}

	if colour == chess.Black {
		s.fullmoveNumber++
	}
	s.toMove = colour.Opposite()

	s.history = append(s.history, entry)
	s.repetitions.Push(s.signature())
}

// Undo takes back the last move, restoring board, side to move, castling
// rights, en-passant target, clocks and status exactly. Undo reopens a game
// that had ended.
func (s *GameState) Undo() error {
	if len(s.history) == 0 {
		return errors.ErrNoHistory
	}
	s.undoMove()
	return nil
}

// Undo is the functional form of GameState.Undo.
func Undo(s *GameState) error {
	return s.Undo()
}

// undoMove pops and reverses the last history entry.
func (s *GameState) undoMove() {
	entry := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.repetitions.Pop()

	m := entry.move
	s.board.Set(m.To, chess.Empty)
	s.board.Set(m.From, entry.moved)
	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		s.board.Move(rookTo, rookFrom)
	}
	if entry.capturedOn != chess.NoSquare {
		s.board.Set(entry.capturedOn, entry.captured)
	}

	s.toMove = s.toMove.Opposite()
	s.castling = entry.castling
	s.enPassant = entry.enPassant
	s.halfmoveClock = entry.halfmoveClock
	s.fullmoveNumber = entry.fullmove
	s.status = entry.status
}

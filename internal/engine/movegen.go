package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// maxMoves is enough room for the pseudo-legal moves of any position.
const maxMoves = 256

// LegalMoves returns every legal move for the side to move. The result is a
// set; no ordering is guaranteed.
func LegalMoves(s *GameState) []chess.Move {
	pseudo := pseudoLegalMoves(s, make([]chess.Move, 0, maxMoves))
	legal := pseudo[:0]
	for _, m := range pseudo {
		if isLegal(s, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMovesFrom returns the legal moves of the piece standing on from.
// It is empty when the square is empty or holds a piece of the side not
// on move.
func LegalMovesFrom(s *GameState, from chess.Square) []chess.Move {
	piece := s.board.Get(from)
	if !piece.BelongsTo(s.toMove) {
		return nil
	}
	var moves []chess.Move
	for _, m := range pieceMoves(s, from, piece, nil) {
		if isLegal(s, m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(s *GameState) bool {
	buf := make([]chess.Move, 0, 32)
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := s.board.Get(sq)
		if !piece.BelongsTo(s.toMove) {
			continue
		}
		buf = pieceMoves(s, sq, piece, buf[:0])
		for _, m := range buf {
			if isLegal(s, m) {
				return true
			}
		}
	}
	return false
}

// isLegal makes the move on a copy of the board and checks that it does not
// leave the mover's king attacked.
func isLegal(s *GameState, m chess.Move) bool {
	testBoard := *s.board
	placeMove(&testBoard, m)
	return !InCheck(&testBoard, s.toMove)
}

// pseudoLegalMoves appends the geometrically reachable moves of every piece
// of the side to move.
func pseudoLegalMoves(s *GameState, moves []chess.Move) []chess.Move {
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := s.board.Get(sq)
		if !piece.BelongsTo(s.toMove) {
			continue
		}
		moves = pieceMoves(s, sq, piece, moves)
	}
	return moves
}

// pieceMoves appends the pseudo-legal moves of one piece.
func pieceMoves(s *GameState, from chess.Square, piece chess.ColouredPiece, moves []chess.Move) []chess.Move {
	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(s, from, piece.Colour, moves)
	case chess.Knight:
		return stepMoves(s.board, from, piece.Colour, knightOffsets[:], moves)
	case chess.King:
		moves = stepMoves(s.board, from, piece.Colour, kingOffsets[:], moves)
		return castleMoves(s, from, moves)
	case chess.Bishop:
		return slideMoves(s.board, from, piece.Colour, diagonalDirs[:], moves)
	case chess.Rook:
		return slideMoves(s.board, from, piece.Colour, straightDirs[:], moves)
	case chess.Queen:
		moves = slideMoves(s.board, from, piece.Colour, diagonalDirs[:], moves)
		return slideMoves(s.board, from, piece.Colour, straightDirs[:], moves)
	}
	return moves
}

// stepMoves handles knights and kings: fixed offsets, one step.
func stepMoves(board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int, moves []chess.Move) []chess.Move {
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if to == chess.NoSquare {
			continue
		}
		target := board.Get(to)
		switch {
		case target.IsEmpty():
			moves = append(moves, chess.Move{From: from, To: to})
		case target.Colour != colour:
			moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagCapture})
		}
	}
	return moves
}

// slideMoves ray-casts until the board edge or a blocker; the first enemy
// piece is included, an own piece is not.
func slideMoves(board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int, moves []chess.Move) []chess.Move {
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to != chess.NoSquare; to = to.Offset(dir[0], dir[1]) {
			target := board.Get(to)
			if target.IsEmpty() {
				moves = append(moves, chess.Move{From: from, To: to})
				continue
			}
			if target.Colour != colour {
				moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagCapture})
			}
			break // Blocked
		}
	}
	return moves
}

package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Standard castling geometry, as files.
const (
	kingFile          = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
)

// castleMoves appends the castling moves available to the king on from.
// The landing square is also covered by the ordinary self-check filter.
func castleMoves(s *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	colour := s.toMove
	rank := colour.HomeRank()
	if from != chess.NewSquare(kingFile, rank) {
		return moves
	}
	if s.castling&(chess.Kingside(colour)|chess.Queenside(colour)) == 0 {
		return moves
	}
	// The king may not castle out of check.
	if InCheck(s.board, colour) {
		return moves
	}

	if s.castling.Has(chess.Kingside(colour)) && canCastle(s.board, colour, kingsideRookFile) {
		moves = append(moves, chess.Move{From: from, To: chess.NewSquare(6, rank), Flags: chess.FlagCastleKingside})
	}
	if s.castling.Has(chess.Queenside(colour)) && canCastle(s.board, colour, queensideRookFile) {
		moves = append(moves, chess.Move{From: from, To: chess.NewSquare(2, rank), Flags: chess.FlagCastleQueenside})
	}
	return moves
}

// canCastle checks that the rook is home, the squares between king and rook
// are empty and the king does not pass through an attacked square.
func canCastle(board *chess.Board, colour chess.Colour, rookFile int) bool {
	rank := colour.HomeRank()
	king := chess.NewSquare(kingFile, rank)
	rook := chess.NewSquare(rookFile, rank)
	if !board.Get(rook).Is(colour, chess.Rook) {
		return false
	}
	if !isPathClear(board, king, rook) {
		return false
	}

	// The king crosses two squares either way: f/g or d/c.
	dir := sign(rookFile - kingFile)
	enemy := colour.Opposite()
	for step := 1; step <= 2; step++ {
		if IsSquareAttacked(board, king.Offset(step*dir, 0), enemy) {
			return false
		}
	}
	return true
}

// castleRookSquares returns the rook's start and landing squares.
func castleRookSquares(m chess.Move) (from, to chess.Square) {
	rank := m.From.Rank()
	if m.Has(chess.FlagCastleKingside) {
		return chess.NewSquare(kingsideRookFile, rank), chess.NewSquare(5, rank)
	}
	return chess.NewSquare(queensideRookFile, rank), chess.NewSquare(3, rank)
}

// rightsLostAt returns the castling rights revoked when a piece leaves or is
// captured on sq.
func rightsLostAt(sq chess.Square) chess.CastlingRights {
	switch sq {
	case chess.E1:
		return chess.WhiteKingside | chess.WhiteQueenside
	case chess.H1:
		return chess.WhiteKingside
	case chess.A1:
		return chess.WhiteQueenside
	case chess.E8:
		return chess.BlackKingside | chess.BlackQueenside
	case chess.H8:
		return chess.BlackKingside
	case chess.A8:
		return chess.BlackQueenside
	}
	return chess.NoCastling
}

// sanitizeCastling drops rights whose king or rook is not on its home square.
func sanitizeCastling(board *chess.Board, rights chess.CastlingRights) chess.CastlingRights {
	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		rank := colour.HomeRank()
		if !board.Get(chess.NewSquare(kingFile, rank)).Is(colour, chess.King) {
			rights &^= chess.Kingside(colour) | chess.Queenside(colour)
			continue
		}
		if !board.Get(chess.NewSquare(kingsideRookFile, rank)).Is(colour, chess.Rook) {
			rights &^= chess.Kingside(colour)
		}
		if !board.Get(chess.NewSquare(queensideRookFile, rank)).Is(colour, chess.Rook) {
			rights &^= chess.Queenside(colour)
		}
	}
	return rights
}

package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnMoves appends pushes, captures, en-passant captures and promotions.
func pawnMoves(s *GameState, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	dir := colour.Forward()
	startRank := colour.HomeRank() + dir
	board := s.board

	// Forward move
	if to := from.Offset(0, dir); to != chess.NoSquare && board.Get(to).IsEmpty() {
		moves = appendPawnMove(moves, chess.Move{From: from, To: to}, colour)

		// Double push from starting rank
		if from.Rank() == startRank {
			if to2 := from.Offset(0, 2*dir); board.Get(to2).IsEmpty() {
				moves = append(moves, chess.Move{From: from, To: to2, Flags: chess.FlagDoublePush})
			}
		}
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		to := from.Offset(df, dir)
		if to == chess.NoSquare {
			continue
		}
		target := board.Get(to)
		if !target.IsEmpty() && target.Colour != colour {
			moves = appendPawnMove(moves, chess.Move{From: from, To: to, Flags: chess.FlagCapture}, colour)
		}
		if to == s.enPassant && target.IsEmpty() &&
			board.Get(chess.NewSquare(to.File(), from.Rank())).Is(colour.Opposite(), chess.Pawn) {
			moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagEnPassant})
		}
	}
	return moves
}

// appendPawnMove expands a move onto the back rank into its four promotions.
func appendPawnMove(moves []chess.Move, m chess.Move, colour chess.Colour) []chess.Move {
	if m.To.Rank() != colour.Opposite().HomeRank() {
		return append(moves, m)
	}
	for _, p := range chess.PromotionPieces {
		m.Promotion = p
		moves = append(moves, m)
	}
	return moves
}

// enPassantVictim returns the square of the pawn captured en passant: the
// destination's file on the mover's origin rank.
func enPassantVictim(m chess.Move) chess.Square {
	return chess.NewSquare(m.To.File(), m.From.Rank())
}

// isPawnPromotion reports whether a pawn of colour moving to to must promote.
func isPawnPromotion(piece chess.ColouredPiece, to chess.Square) bool {
	return piece.Kind == chess.Pawn && to.Rank() == piece.Colour.Opposite().HomeRank()
}

// Package engine provides chess move validation and game-state tracking.
package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Draw thresholds.
const (
	// FiftyMoveLimit is the half-move clock value at which the game is drawn.
	FiftyMoveLimit = 100

	// RepetitionLimit is how many times a position must occur to draw.
	RepetitionLimit = 3
)

// evaluateStatus classifies the position for the side now to move.
// Checkmate and stalemate take precedence over the draw rules, and every
// terminal status takes precedence over plain check.
func (s *GameState) evaluateStatus() chess.Status {
	inCheck := InCheck(s.board, s.toMove)
	if !HasLegalMoves(s) {
		if inCheck {
			return chess.Checkmate
		}
		return chess.Stalemate
	}

	switch {
	case HasInsufficientMaterial(s.board):
		return chess.DrawInsufficientMaterial
	case s.halfmoveClock >= FiftyMoveLimit:
		return chess.DrawFiftyMove
	case s.Repetitions() >= RepetitionLimit:
		return chess.DrawRepetition
	case inCheck:
		return chess.Check
	}
	return chess.Ongoing
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(s *GameState) bool {
	return InCheck(s.board, s.toMove) && !HasLegalMoves(s)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(s *GameState) bool {
	return !InCheck(s.board, s.toMove) && !HasLegalMoves(s)
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.Piece
	var whiteBishopOnLight, blackBishopOnLight bool

	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := board.Get(sq)
		if piece.IsEmpty() || piece.Kind == chess.King {
			continue
		}

		// Any pawn, rook, or queen means sufficient material
		switch piece.Kind {
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}

		if piece.Colour == chess.White {
			whitePieces = append(whitePieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				whiteBishopOnLight = sq.IsLight()
			}
		} else {
			blackPieces = append(blackPieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				blackBishopOnLight = sq.IsLight()
			}
		}
	}

	switch {
	case len(whitePieces) == 0 && len(blackPieces) == 0:
		return true
	case len(whitePieces) == 0 && len(blackPieces) == 1:
		return true // a lone minor piece
	case len(blackPieces) == 0 && len(whitePieces) == 1:
		return true
	case len(whitePieces) == 1 && len(blackPieces) == 1:
		return whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop &&
			whiteBishopOnLight == blackBishopOnLight
	}
	return false
}

package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Offset tables as {file delta, rank delta}.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// InCheck returns true if the given colour's king is attacked.
func InCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.KingSquare(colour)
	if king == chess.NoSquare {
		return false // No king found
	}
	return IsSquareAttacked(board, king, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour
// under the board's current occupancy. Pawns attack diagonally whether or not
// the square is occupied.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Pawns of byColour attack from one rank behind, relative to their direction.
	pawnRank := -byColour.Forward()
	for _, df := range [2]int{-1, 1} {
		if board.Get(sq.Offset(df, pawnRank)).Is(byColour, chess.Pawn) {
			return true
		}
	}

	for _, off := range knightOffsets {
		if board.Get(sq.Offset(off[0], off[1])).Is(byColour, chess.Knight) {
			return true
		}
	}

	for _, off := range kingOffsets {
		if board.Get(sq.Offset(off[0], off[1])).Is(byColour, chess.King) {
			return true
		}
	}

	if rayHits(board, sq, diagonalDirs[:], byColour, chess.Bishop) {
		return true
	}
	return rayHits(board, sq, straightDirs[:], byColour, chess.Rook)
}

// rayHits walks each direction from sq and reports whether the first
// occupied square holds a slider of byColour (slider or queen).
func rayHits(board *chess.Board, sq chess.Square, dirs [][2]int, byColour chess.Colour, slider chess.Piece) bool {
	for _, dir := range dirs {
		for target := sq.Offset(dir[0], dir[1]); target != chess.NoSquare; target = target.Offset(dir[0], dir[1]) {
			piece := board.Get(target)
			if piece.IsEmpty() {
				continue
			}
			if piece.Colour == byColour && (piece.Kind == slider || piece.Kind == chess.Queen) {
				return true
			}
			break // Blocked
		}
	}
	return false
}

// Attackers returns every square holding a piece of byColour that attacks sq.
func Attackers(board *chess.Board, sq chess.Square, byColour chess.Colour) []chess.Square {
	var found []chess.Square
	for from := chess.Square(0); from < chess.NumSquares; from++ {
		piece := board.Get(from)
		if !piece.BelongsTo(byColour) {
			continue
		}
		if attacksFrom(board, from, piece, sq) {
			found = append(found, from)
		}
	}
	return found
}

// attacksFrom reports whether piece standing on from attacks target.
func attacksFrom(board *chess.Board, from chess.Square, piece chess.ColouredPiece, target chess.Square) bool {
	df := target.File() - from.File()
	dr := target.Rank() - from.Rank()

	switch piece.Kind {
	case chess.Pawn:
		return dr == piece.Colour.Forward() && abs(df) == 1
	case chess.Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case chess.King:
		return from != target && abs(df) <= 1 && abs(dr) <= 1
	case chess.Bishop:
		return abs(df) == abs(dr) && df != 0 && isPathClear(board, from, target)
	case chess.Rook:
		return (df == 0) != (dr == 0) && isPathClear(board, from, target)
	case chess.Queen:
		diagonal := abs(df) == abs(dr) && df != 0
		straight := (df == 0) != (dr == 0)
		return (diagonal || straight) && isPathClear(board, from, target)
	}
	return false
}

// isPathClear checks the squares strictly between from and to along a
// straight or diagonal line.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	fileDir := sign(to.File() - from.File())
	rankDir := sign(to.Rank() - from.Rank())

	for sq := from.Offset(fileDir, rankDir); sq != to; sq = sq.Offset(fileDir, rankDir) {
		if sq == chess.NoSquare {
			return false
		}
		if !board.Get(sq).IsEmpty() {
			return false
		}
	}
	return true
}

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.NoPiece
	}
}

// fenError builds a ParseError for one FEN field.
func fenError(fen, field, format string, args ...interface{}) error {
	return &errors.ParseError{
		Err:   fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errors.ErrInvalidFEN),
		Input: fen,
		Field: field,
	}
}

// NewGameFromFEN creates a game from a FEN string. Missing trailing fields
// default to "w - - 0 1". The position must have exactly one king per side,
// no pawns on the back ranks, and the side not to move must not be in check.
func NewGameFromFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fenError(fen, "placement", "empty FEN string")
	}

	s := &GameState{
		board:          chess.NewBoard(),
		toMove:         chess.White,
		enPassant:      chess.NoSquare,
		fullmoveNumber: 1,
	}

	if err := parsePiecePositions(s.board, fen, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(s, fen, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(s, fen, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(s, fen, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(s, fen, parts); err != nil {
		return nil, err
	}
	if err := validatePosition(s, fen); err != nil {
		return nil, err
	}

	s.resetRepetitions()
	s.status = s.evaluateStatus()
	return s, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, fen, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fen, "placement", "%d ranks", len(ranks))
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range []byte(row) {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				piece := ConvertFENCharToPiece(c)
				if piece == chess.NoPiece {
					return fenError(fen, "placement", "invalid piece character %q", c)
				}
				if file >= chess.BoardSize {
					return fenError(fen, "placement", "rank %d overflows", rank+1)
				}
				colour := chess.White
				if c >= 'a' {
					colour = chess.Black
				}
				board.Set(chess.NewSquare(file, rank), chess.ColouredPiece{Kind: piece, Colour: colour})
				file++
			}
		}
		if file != chess.BoardSize {
			return fenError(fen, "placement", "rank %d has %d files", rank+1, file)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(s *GameState, fen string, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		s.toMove = chess.White
	case "b":
		s.toMove = chess.Black
	default:
		return fenError(fen, "side to move", "%q", parts[1])
	}
	return nil
}

// parseCastlingRights parses the castling availability field. Rights whose
// king or rook is not on its home square are dropped.
func parseCastlingRights(s *GameState, fen string, parts []string) error {
	s.castling = chess.NoCastling
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			s.castling |= chess.WhiteKingside
		case 'Q':
			s.castling |= chess.WhiteQueenside
		case 'k':
			s.castling |= chess.BlackKingside
		case 'q':
			s.castling |= chess.BlackQueenside
		default:
			return fenError(fen, "castling", "%q", c)
		}
	}
	s.castling = sanitizeCastling(s.board, s.castling)
	return nil
}

// parseEnPassant parses the en passant target square field. The target must
// sit on the rank a double push by the side not to move would skip.
func parseEnPassant(s *GameState, fen string, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fenError(fen, "en passant", "%q", parts[3])
	}
	wantRank := 5 // after a black double push
	if s.toMove == chess.Black {
		wantRank = 2
	}
	if sq.Rank() != wantRank {
		return fenError(fen, "en passant", "%s is not a skipped square", sq)
	}
	s.enPassant = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(s *GameState, fen string, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return fenError(fen, "halfmove clock", "%q", parts[4])
		}
		s.halfmoveClock = uint(n)
	}
	if len(parts) >= 6 {
		n, err := strconv.ParseUint(parts[5], 10, 32)
		if err != nil || n == 0 {
			return fenError(fen, "fullmove number", "%q", parts[5])
		}
		s.fullmoveNumber = uint(n)
	}
	return nil
}

// validatePosition rejects positions that could not arise in play.
func validatePosition(s *GameState, fen string) error {
	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		if n := s.board.Count(colour, chess.King); n != 1 {
			return fenError(fen, "placement", "%s has %d kings", colour, n)
		}
	}
	for file := 0; file < chess.BoardSize; file++ {
		for _, rank := range [2]int{0, chess.BoardSize - 1} {
			if s.board.Get(chess.NewSquare(file, rank)).Kind == chess.Pawn {
				return fenError(fen, "placement", "pawn on back rank")
			}
		}
	}
	if InCheck(s.board, s.toMove.Opposite()) {
		return fenError(fen, "side to move", "%s can capture the king", s.toMove)
	}
	return nil
}

// ToFEN converts a game's current position to a FEN string.
func ToFEN(s *GameState) string {
	var sb strings.Builder

	writePiecePositions(&sb, s.board)
	sb.WriteByte(' ')
	if s.toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(s.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(s.enPassant.String())
	fmt.Fprintf(&sb, " %d %d", s.halfmoveClock, s.fullmoveNumber)

	return sb.String()
}

// FEN is the method form of ToFEN.
func (s *GameState) FEN() string {
	return ToFEN(s)
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.NewSquare(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// MustGameFromFEN is NewGameFromFEN for trusted constant positions; it
// panics on a malformed FEN.
func MustGameFromFEN(fen string) *GameState {
	s, err := NewGameFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return s
}

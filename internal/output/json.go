package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// JSONGame represents a game position in JSON format.
type JSONGame struct {
	ID             string     `json:"id,omitempty"`
	FEN            string     `json:"fen"`
	Board          []string   `json:"board"` // rank 8 first, '.' for empty
	ToMove         string     `json:"toMove"`
	Status         string     `json:"status"`
	Result         string     `json:"result"`
	Castling       string     `json:"castling"`
	EnPassant      string     `json:"enPassant,omitempty"`
	HalfmoveClock  uint       `json:"halfmoveClock"`
	FullmoveNumber uint       `json:"fullmoveNumber"`
	PlyCount       int        `json:"plyCount"`
	LegalMoves     []string   `json:"legalMoves"`
	History        []JSONMove `json:"history,omitempty"`
	LastMove       *JSONMove  `json:"lastMove,omitempty"`
}

// JSONMove represents a played move in JSON format.
type JSONMove struct {
	MoveNumber uint   `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Promotion  string `json:"promotion,omitempty"`
	Capture    bool   `json:"capture,omitempty"`
	EnPassant  bool   `json:"enPassant,omitempty"`
	Castle     string `json:"castle,omitempty"` // "kingside" or "queenside"
}

// JSONPerft holds the result of a perft run.
type JSONPerft struct {
	FEN    string            `json:"fen"`
	Depth  int               `json:"depth"`
	Nodes  uint64            `json:"nodes"`
	Divide map[string]uint64 `json:"divide,omitempty"`
}

// OutputGameJSON outputs a single game in JSON format.
func OutputGameJSON(s *engine.GameState, cfg *config.Config) error {
	return encode(cfg.OutputFile, GameToJSON(s))
}

// OutputPerftJSON outputs a perft result in JSON format.
func OutputPerftJSON(w io.Writer, fen string, depth int, nodes uint64, entries []engine.DivideEntry) error {
	res := &JSONPerft{FEN: fen, Depth: depth, Nodes: nodes}
	if len(entries) > 0 {
		res.Divide = make(map[string]uint64, len(entries))
		for _, e := range entries {
			res.Divide[e.Move.UCI()] = e.Nodes
		}
	}
	return encode(w, res)
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// GameToJSON converts a game to its JSON view.
func GameToJSON(s *engine.GameState) *JSONGame {
	board := s.Board()
	jg := &JSONGame{
		FEN:            s.FEN(),
		Board:          boardRows(&board),
		ToMove:         colorName(s.ToMove()),
		Status:         s.Status().String(),
		Result:         Result(s),
		Castling:       s.CastlingRights().String(),
		HalfmoveClock:  s.HalfmoveClock(),
		FullmoveNumber: s.FullmoveNumber(),
		PlyCount:       s.Ply(),
		LegalMoves:     engine.LegalUCIMoves(s),
	}
	if ep := s.EnPassantTarget(); ep != chess.NoSquare {
		jg.EnPassant = ep.String()
	}
	if jg.LegalMoves == nil {
		jg.LegalMoves = []string{}
	}

	jg.History = convertHistory(s)
	if n := len(jg.History); n > 0 {
		last := jg.History[n-1]
		jg.LastMove = &last
	}
	return jg
}

// Result returns the PGN result string for the game's status.
func Result(s *engine.GameState) string {
	status := s.Status()
	switch {
	case status == chess.Checkmate && s.ToMove() == chess.Black:
		return "1-0"
	case status == chess.Checkmate:
		return "0-1"
	case status.IsDraw():
		return "1/2-1/2"
	default:
		return "*"
	}
}

// boardRows renders each rank as eight FEN letters, rank 8 first.
func boardRows(board *chess.Board) []string {
	rows := make([]string, 0, chess.BoardSize)
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		row := make([]byte, chess.BoardSize)
		for file := 0; file < chess.BoardSize; file++ {
			row[file] = board.Get(chess.NewSquare(file, rank)).FENLetter()
		}
		rows = append(rows, string(row))
	}
	return rows
}

// convertHistory numbers the moves by walking back from the current
// position, so games loaded from FEN keep their move numbers.
func convertHistory(s *engine.GameState) []JSONMove {
	history := s.History()
	if len(history) == 0 {
		return nil
	}
	moves := make([]JSONMove, len(history))
	num := s.FullmoveNumber()
	side := s.ToMove()
	for i := len(history) - 1; i >= 0; i-- {
		side = side.Opposite()
		if side == chess.Black && num > 1 {
			num--
		}
		moves[i] = convertMove(history[i], num, side)
	}
	return moves
}

func convertMove(m chess.Move, moveNum uint, side chess.Colour) JSONMove {
	jm := JSONMove{
		MoveNumber: moveNum,
		Color:      colorName(side),
		UCI:        m.UCI(),
		From:       m.From.String(),
		To:         m.To.String(),
		Capture:    m.IsCapture(),
		EnPassant:  m.Has(chess.FlagEnPassant),
	}
	if m.IsPromotion() {
		jm.Promotion = pieceTypeName(m.Promotion)
	}
	switch {
	case m.Has(chess.FlagCastleKingside):
		jm.Castle = "kingside"
	case m.Has(chess.FlagCastleQueenside):
		jm.Castle = "queenside"
	}
	return jm
}

func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Queen:
		return "queen"
	case chess.Rook:
		return "rook"
	case chess.Bishop:
		return "bishop"
	case chess.Knight:
		return "knight"
	}
	return ""
}

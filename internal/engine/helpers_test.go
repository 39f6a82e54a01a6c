package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// mustGame loads a FEN position or aborts the test.
func mustGame(t testing.TB, fen string) *GameState {
	t.Helper()
	s, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
	}
	return s
}

// play applies each UCI move in turn and returns the final status.
func play(t testing.TB, s *GameState, moves ...string) chess.Status {
	t.Helper()
	status := s.Status()
	for _, text := range moves {
		var err error
		status, err = s.ApplyUCI(text)
		if err != nil {
			t.Fatalf("ApplyUCI(%q) at ply %d error: %v", text, s.Ply()+1, err)
		}
	}
	return status
}

// square parses a square name or aborts the test.
func square(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", name, err)
	}
	return sq
}

// request builds a move request from square names and a promotion piece.
func request(t testing.TB, from, to string, promotion chess.Piece) chess.MoveRequest {
	t.Helper()
	return chess.MoveRequest{From: square(t, from), To: square(t, to), Promotion: promotion}
}

// Reference positions with well-known perft counts.
const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

// referenceFENs is a spread of positions covering every special move.
var referenceFENs = []string{
	InitialFEN,
	kiwipeteFEN,
	position3FEN,
	position4FEN,
	position5FEN,
	"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
	"4k3/1P6/8/8/8/8/6p1/4K3 w - - 0 1",
	"4k3/8/8/8/8/8/4q3/4K3 w - - 0 1",
}

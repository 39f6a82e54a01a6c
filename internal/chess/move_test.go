package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

func TestParseMoveRequest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"e2e4", "e2e4"},
		{"E2E4", "e2e4"},
		{"e2 e4", "e2e4"},
		{" e2-e4 ", "e2e4"},
		{"e7e8q", "e7e8q"},
		{"e7e8=N", "e7e8n"},
		{"a2a1r", "a2a1r"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := ParseMoveRequest(tt.input)
			if err != nil {
				t.Fatalf("ParseMoveRequest(%q) error: %v", tt.input, err)
			}
			if got := req.String(); got != tt.want {
				t.Errorf("ParseMoveRequest(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMoveRequest_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", chesserrors.ErrInvalidMove},
		{"e2", chesserrors.ErrInvalidMove},
		{"e2e4e5", chesserrors.ErrInvalidMove},
		{"z9e4", chesserrors.ErrInvalidSquare},
		{"e2e9", chesserrors.ErrInvalidSquare},
		{"e7e8k", chesserrors.ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseMoveRequest(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseMoveRequest(%q) error = %v; want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestMoveFlags(t *testing.T) {
	ep := Move{From: NewSquare(4, 4), To: NewSquare(3, 5), Flags: FlagEnPassant}
	if !ep.IsCapture() {
		t.Error("en passant should count as a capture")
	}

	castle := Move{From: E1, To: G1, Flags: FlagCastleKingside}
	if !castle.IsCastle() || castle.IsCapture() {
		t.Error("kingside castle flags wrong")
	}

	promo := Move{From: NewSquare(0, 6), To: A8, Promotion: Knight, Flags: FlagCapture}
	if !promo.IsPromotion() || promo.UCI() != "a7a8n" {
		t.Errorf("promotion UCI = %q; want a7a8n", promo.UCI())
	}
	if !promo.Matches(MoveRequest{From: NewSquare(0, 6), To: A8, Promotion: Knight}) {
		t.Error("Matches() = false for the move's own request")
	}
	if promo.Matches(MoveRequest{From: NewSquare(0, 6), To: A8, Promotion: Queen}) {
		t.Error("Matches() ignores the promotion piece")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status   Status
		name     string
		terminal bool
		draw     bool
	}{
		{Ongoing, "ongoing", false, false},
		{Check, "check", false, false},
		{Checkmate, "checkmate", true, false},
		{Stalemate, "stalemate", true, true},
		{DrawFiftyMove, "draw-by-fifty-move", true, true},
		{DrawRepetition, "draw-by-repetition", true, true},
		{DrawInsufficientMaterial, "draw-by-insufficient-material", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.status.String() != tt.name {
				t.Errorf("String() = %q; want %q", tt.status.String(), tt.name)
			}
			if tt.status.IsTerminal() != tt.terminal {
				t.Errorf("IsTerminal() = %v; want %v", tt.status.IsTerminal(), tt.terminal)
			}
			if tt.status.IsDraw() != tt.draw {
				t.Errorf("IsDraw() = %v; want %v", tt.status.IsDraw(), tt.draw)
			}
		})
	}
}

func TestCastlingRightsString(t *testing.T) {
	tests := []struct {
		rights CastlingRights
		want   string
	}{
		{AllCastling, "KQkq"},
		{NoCastling, "-"},
		{WhiteKingside | BlackQueenside, "Kq"},
	}
	for _, tt := range tests {
		if got := tt.rights.String(); got != tt.want {
			t.Errorf("CastlingRights(%d).String() = %q; want %q", tt.rights, got, tt.want)
		}
	}
}

func TestColouredPiece(t *testing.T) {
	if W(Knight).FENLetter() != 'N' || B(Knight).FENLetter() != 'n' {
		t.Error("FENLetter case wrong")
	}
	if !Empty.IsEmpty() || Empty.BelongsTo(White) {
		t.Error("Empty should belong to nobody")
	}
	if W(Queen).String() != "White Queen" {
		t.Errorf("String() = %q", W(Queen).String())
	}
}

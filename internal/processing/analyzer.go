// Package processing replays finished or in-progress games to report what
// happened in them.
package processing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// GameAnalysis holds features found by replaying a game.
type GameAnalysis struct {
	StartFEN string `json:"startFen"`
	FinalFEN string `json:"finalFen"`
	PlyCount int    `json:"plyCount"`

	Captures   int `json:"captures"`
	Checks     int `json:"checks"`
	Castles    int `json:"castles"`
	EnPassants int `json:"enPassants"`
	Promotions int `json:"promotions"`

	HasUnderpromotion bool `json:"hasUnderpromotion"`

	// Draw rule markers, set if the condition held at any point.
	HasFiftyMoveRule        bool `json:"hasFiftyMoveRule"`
	HasRepetition           bool `json:"hasRepetition"`
	MaxRepetitions          int  `json:"maxRepetitions"`
	HasInsufficientMaterial bool `json:"hasInsufficientMaterial"`

	// Placement hashes, start position first.
	Positions []uint64 `json:"-"`
}

// RepetitionDetected returns true if a position occurred three times.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// UnderpromotionFound returns true if any pawn promoted to non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// ReplayToStart returns a copy of the game with every move taken back.
func ReplayToStart(s *engine.GameState) *engine.GameState {
	start := s.Clone()
	for start.Ply() > 0 {
		if err := start.Undo(); err != nil {
			break
		}
	}
	return start
}

// AnalyzeGame replays s from its start position. s is not modified.
func AnalyzeGame(s *engine.GameState) *GameAnalysis {
	replay := ReplayToStart(s)
	analysis := &GameAnalysis{
		StartFEN:       replay.FEN(),
		MaxRepetitions: 1,
	}
	analysis.Positions = append(analysis.Positions, placementHash(replay))
	analysis.observe(replay)

	for _, m := range s.History() {
		status, err := replay.Apply(m.Request())
		if err != nil {
			break
		}
		analysis.PlyCount++
		analysis.count(m, status)
		analysis.Positions = append(analysis.Positions, placementHash(replay))
		analysis.observe(replay)
	}

	analysis.FinalFEN = replay.FEN()
	return analysis
}

// count records the features of one move.
func (ga *GameAnalysis) count(m chess.Move, status chess.Status) {
	if m.IsCapture() {
		ga.Captures++
	}
	if m.Has(chess.FlagEnPassant) {
		ga.EnPassants++
	}
	if m.IsCastle() {
		ga.Castles++
	}
	if m.IsPromotion() {
		ga.Promotions++
		if m.Promotion != chess.Queen {
			ga.HasUnderpromotion = true
		}
	}
	if status == chess.Check || status == chess.Checkmate {
		ga.Checks++
	}
}

// observe records the draw-rule state of the current position.
func (ga *GameAnalysis) observe(s *engine.GameState) {
	if s.HalfmoveClock() >= engine.FiftyMoveLimit {
		ga.HasFiftyMoveRule = true
	}
	if n := s.Repetitions(); n > ga.MaxRepetitions {
		ga.MaxRepetitions = n
	}
	if ga.MaxRepetitions >= engine.RepetitionLimit {
		ga.HasRepetition = true
	}
	board := s.Board()
	if engine.HasInsufficientMaterial(&board) {
		ga.HasInsufficientMaterial = true
	}
}

func placementHash(s *engine.GameState) uint64 {
	board := s.Board()
	return hashing.PlacementHash(&board)
}

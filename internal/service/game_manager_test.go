package service

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/config"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
	"github.com/lgbarn/chess-rules-go/internal/ws"
)

// fakeConn records every pushed message.
type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, v.(ws.Message))
	return nil
}

func (f *fakeConn) states(t *testing.T) []*output.JSONGame {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*output.JSONGame
	for _, m := range f.messages {
		if m.Type != ws.MessageTypeGameState {
			t.Fatalf("message type = %q, want gameState", m.Type)
		}
		var jg output.JSONGame
		if err := json.Unmarshal(m.Payload, &jg); err != nil {
			t.Fatalf("payload: %v", err)
		}
		out = append(out, &jg)
	}
	return out
}

func newTestManager(cfg *config.Config) *GameManager {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	cfg.SetLog(io.Discard)
	return NewGameManager(cfg)
}

func mustCreate(t *testing.T, gm *GameManager, fen string) string {
	t.Helper()
	jg, err := gm.CreateGame(fen)
	if err != nil {
		t.Fatalf("CreateGame(%q) error: %v", fen, err)
	}
	return jg.ID
}

func TestCreateGame(t *testing.T) {
	gm := newTestManager(nil)

	jg, err := gm.CreateGame("")
	testutil.AssertNoError(t, err)
	if jg.ID == "" {
		t.Error("CreateGame returned an empty ID")
	}
	if len(jg.LegalMoves) != 20 {
		t.Errorf("len(LegalMoves) = %d, want 20", len(jg.LegalMoves))
	}

	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	jg2, err := gm.CreateGame(fen)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, jg2.FEN, fen)
	if jg2.ID == jg.ID {
		t.Error("two games share an ID")
	}
	if gm.Count() != 2 {
		t.Errorf("Count() = %d, want 2", gm.Count())
	}
}

func TestCreateGame_InvalidFEN(t *testing.T) {
	gm := newTestManager(nil)
	_, err := gm.CreateGame("not a fen")
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidFEN)
	if gm.Count() != 0 {
		t.Errorf("Count() = %d, want 0", gm.Count())
	}
}

func TestCreateGame_Limit(t *testing.T) {
	gm := newTestManager(config.NewConfigBuilder().WithMaxGames(1).Build())
	mustCreate(t, gm, "")

	_, err := gm.CreateGame("")
	testutil.AssertErrorIs(t, err, chesserrors.ErrTooManyGames)
}

func TestGetGameState_NotFound(t *testing.T) {
	gm := newTestManager(nil)
	_, err := gm.GetGameState("missing")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
}

func TestLegalMoves(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	all, err := gm.LegalMoves(id, "")
	testutil.AssertNoError(t, err)
	if len(all) != 20 {
		t.Errorf("len(LegalMoves) = %d, want 20", len(all))
	}

	knight, err := gm.LegalMoves(id, "g1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, knight, []string{"g1f3", "g1h3"})

	empty, err := gm.LegalMoves(id, "e4")
	testutil.AssertNoError(t, err)
	if len(empty) != 0 {
		t.Errorf("moves from empty square = %v", empty)
	}

	_, err = gm.LegalMoves(id, "z9")
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidSquare)

	_, err = gm.LegalMoves("missing", "")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
}

func TestMakeMove(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	jg, err := gm.MakeMove(id, "e2e4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, jg.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if jg.LastMove == nil || jg.LastMove.UCI != "e2e4" {
		t.Errorf("LastMove = %+v", jg.LastMove)
	}
}

func TestMakeMove_Errors(t *testing.T) {
	tests := []struct {
		name string
		move string
		want error
	}{
		{"garbage", "hi", chesserrors.ErrInvalidMove},
		{"off board", "e2e9", chesserrors.ErrInvalidSquare},
		{"empty source", "e4e5", chesserrors.ErrNoPieceAtSource},
		{"wrong turn", "e7e5", chesserrors.ErrWrongTurn},
		{"illegal", "e2e5", chesserrors.ErrNotInLegalSet},
	}

	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gm.MakeMove(id, tt.move)
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}

	jg, err := gm.GetGameState(id)
	testutil.AssertNoError(t, err)
	if jg.PlyCount != 0 {
		t.Errorf("rejected moves changed the game: PlyCount = %d", jg.PlyCount)
	}
}

func TestMakeMove_AfterMate(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")
	for _, m := range testutil.FoolsMate {
		if _, err := gm.MakeMove(id, m); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", m, err)
		}
	}

	jg, err := gm.GetGameState(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, jg.Status, "checkmate")
	testutil.AssertEqual(t, jg.Result, "0-1")

	_, err = gm.MakeMove(id, "a2a3")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameAlreadyOver)
}

func TestUndo(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	_, err := gm.Undo(id)
	testutil.AssertErrorIs(t, err, chesserrors.ErrNoHistory)

	if _, err := gm.MakeMove(id, "d2d4"); err != nil {
		t.Fatal(err)
	}
	jg, err := gm.Undo(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, jg.PlyCount, 0)
	testutil.AssertEqual(t, jg.FEN, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	_, err = gm.Undo("missing")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
}

func TestAnalyze(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")
	for _, m := range testutil.ScholarsMate {
		if _, err := gm.MakeMove(id, m); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", m, err)
		}
	}

	analysis, err := gm.Analyze(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, analysis.PlyCount, 7)
	testutil.AssertEqual(t, analysis.Captures, 1)

	_, err = gm.Analyze("missing")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
}

func TestDeleteGame(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	testutil.AssertNoError(t, gm.DeleteGame(id))
	testutil.AssertErrorIs(t, gm.DeleteGame(id), chesserrors.ErrGameNotFound)
	if gm.Count() != 0 {
		t.Errorf("Count() = %d, want 0", gm.Count())
	}
}

func TestConnections_Broadcast(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	white, black := &fakeConn{}, &fakeConn{}
	testutil.AssertNoError(t, gm.RegisterConnection(id, "white", white))
	testutil.AssertNoError(t, gm.RegisterConnection(id, "black", black))

	if _, err := gm.MakeMove(id, "e2e4"); err != nil {
		t.Fatal(err)
	}
	if _, err := gm.Undo(id); err != nil {
		t.Fatal(err)
	}

	var plies []int
	for _, jg := range white.states(t) {
		plies = append(plies, jg.PlyCount)
	}
	// Own registration, the black registration, the move, the undo.
	if diff := cmp.Diff([]int{0, 0, 1, 0}, plies); diff != "" {
		t.Errorf("white received (-want +got):\n%s", diff)
	}
	if got := len(black.states(t)); got != 3 {
		t.Errorf("black received %d states, want 3", got)
	}
	if got := black.states(t)[0].ID; got != id {
		t.Errorf("pushed ID = %q, want %q", got, id)
	}
}

func TestConnections_Errors(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	testutil.AssertErrorIs(t, gm.RegisterConnection("missing", "p1", &fakeConn{}), chesserrors.ErrGameNotFound)
	testutil.AssertNoError(t, gm.RegisterConnection(id, "p1", &fakeConn{}))
	testutil.AssertErrorIs(t, gm.RegisterConnection(id, "p1", &fakeConn{}), chesserrors.ErrSubscriberExists)

	gm.UnregisterConnection(id, "p1")
	gm.UnregisterConnection("missing", "p1")
	testutil.AssertNoError(t, gm.RegisterConnection(id, "p1", &fakeConn{}))
}

func TestConnections_DropsFailedWriter(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")

	broken := &fakeConn{}
	testutil.AssertNoError(t, gm.RegisterConnection(id, "p1", broken))
	broken.mu.Lock()
	broken.fail = true
	broken.mu.Unlock()

	if _, err := gm.MakeMove(id, "e2e4"); err != nil {
		t.Fatal(err)
	}
	// The failed subscriber was removed, so the same player may reconnect.
	testutil.AssertNoError(t, gm.RegisterConnection(id, "p1", &fakeConn{}))
}

func TestEvictIdle(t *testing.T) {
	cfg := config.NewConfigBuilder().WithIdleTimeout(time.Minute).Build()
	gm := newTestManager(cfg)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	gm.now = func() time.Time { return start }

	idle := mustCreate(t, gm, "")
	watched := mustCreate(t, gm, "")
	testutil.AssertNoError(t, gm.RegisterConnection(watched, "p1", &fakeConn{}))

	if n := gm.EvictIdle(start.Add(30 * time.Second)); n != 0 {
		t.Errorf("EvictIdle before timeout = %d, want 0", n)
	}
	if n := gm.EvictIdle(start.Add(2 * time.Minute)); n != 1 {
		t.Errorf("EvictIdle after timeout = %d, want 1", n)
	}
	_, err := gm.GetGameState(idle)
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
	_, err = gm.GetGameState(watched)
	testutil.AssertNoError(t, err)
}

func TestEvictIdle_Disabled(t *testing.T) {
	gm := newTestManager(nil)
	mustCreate(t, gm, "")
	if n := gm.EvictIdle(time.Now().Add(24 * time.Hour)); n != 0 {
		t.Errorf("EvictIdle with no timeout = %d, want 0", n)
	}
}

func TestGameManager_Concurrent(t *testing.T) {
	gm := newTestManager(nil)
	id := mustCreate(t, gm, "")
	line := []string{"g1f3", "g8f6"}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			for _, m := range line {
				if _, err := gm.MakeMove(id, m); err != nil {
					t.Errorf("MakeMove(%s) error: %v", m, err)
					return
				}
			}
			for range line {
				if _, err := gm.Undo(id); err != nil {
					t.Errorf("Undo error: %v", err)
					return
				}
			}
		}
	}()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := gm.GetGameState(id); err != nil {
					t.Errorf("GetGameState error: %v", err)
				}
				if _, err := gm.LegalMoves(id, ""); err != nil {
					t.Errorf("LegalMoves error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	jg, err := gm.GetGameState(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, jg.PlyCount, 0)
}

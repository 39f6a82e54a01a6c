package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/processing"
)

// GameManager is the registry of live games.
type GameManager struct {
	games map[string]*Game
	mu    sync.RWMutex

	maxGames    int
	idleTimeout time.Duration

	logger    *log.Logger
	verbosity int

	now func() time.Time
}

// NewGameManager creates an empty registry using the server limits in cfg.
func NewGameManager(cfg *config.Config) *GameManager {
	return &GameManager{
		games:       make(map[string]*Game),
		maxGames:    cfg.Server.MaxGames,
		idleTimeout: cfg.Server.IdleTimeout,
		logger:      log.New(cfg.LogFile, "", log.LstdFlags),
		verbosity:   cfg.Verbosity,
		now:         time.Now,
	}
}

func (gm *GameManager) logf(level int, format string, args ...interface{}) {
	if gm.verbosity >= level {
		gm.logger.Printf(format, args...)
	}
}

// CreateGame starts a game from fen, or from the initial position when fen
// is empty, and returns its first snapshot.
func (gm *GameManager) CreateGame(fen string) (*output.JSONGame, error) {
	state := engine.NewGame()
	if fen != "" {
		var err error
		if state, err = engine.NewGameFromFEN(fen); err != nil {
			return nil, err
		}
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if gm.maxGames > 0 && len(gm.games) >= gm.maxGames {
		return nil, fmt.Errorf("limit %d: %w", gm.maxGames, errors.ErrTooManyGames)
	}

	game := newGame(uuid.New().String(), state, gm.now())
	gm.games[game.ID] = game
	gm.logf(1, "game %s created at %s", game.ID, state.FEN())
	return game.snapshotLocked(), nil
}

// getGame looks up a game without locking it.
func (gm *GameManager) getGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %s", gameID)
	}
	return game, nil
}

// GetGameState returns the current snapshot of a game.
func (gm *GameManager) GetGameState(gameID string) (*output.JSONGame, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return nil, err
	}
	game.mu.Lock()
	defer game.mu.Unlock()
	return game.snapshotLocked(), nil
}

// LegalMoves lists the legal moves in UCI form, for the whole position or,
// when from is non-empty, for the piece on that square.
func (gm *GameManager) LegalMoves(gameID, from string) ([]string, error) {
	fromSq := chess.NoSquare
	if from != "" {
		sq, err := chess.ParseSquare(from)
		if err != nil {
			return nil, err
		}
		fromSq = sq
	}

	game, err := gm.getGame(gameID)
	if err != nil {
		return nil, err
	}
	game.mu.Lock()
	defer game.mu.Unlock()

	if fromSq == chess.NoSquare {
		return engine.LegalUCIMoves(game.state), nil
	}
	return engine.UCIMoves(engine.LegalMovesFrom(game.state, fromSq)), nil
}

// MakeMove applies a UCI move, pushes the new state to subscribers and
// returns it.
func (gm *GameManager) MakeMove(gameID, move string) (*output.JSONGame, error) {
	req, err := engine.ParseUCIMove(move)
	if err != nil {
		return nil, err
	}
	game, err := gm.getGame(gameID)
	if err != nil {
		return nil, err
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	status, err := game.state.Apply(req)
	if err != nil {
		gm.logf(2, "game %s rejected %s: %v", gameID, move, err)
		return nil, err
	}
	game.lastActive = gm.now()
	gm.logf(2, "game %s: %s, %s", gameID, req, status)
	gm.dropped(gameID, game.broadcastLocked())
	return game.snapshotLocked(), nil
}

// Undo takes back the last move and pushes the new state to subscribers.
func (gm *GameManager) Undo(gameID string) (*output.JSONGame, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return nil, err
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	if err := game.state.Undo(); err != nil {
		return nil, err
	}
	game.lastActive = gm.now()
	gm.logf(2, "game %s: undo to ply %d", gameID, game.state.Ply())
	gm.dropped(gameID, game.broadcastLocked())
	return game.snapshotLocked(), nil
}

// Analyze replays a game and reports its captures, checks and draw markers.
func (gm *GameManager) Analyze(gameID string) (*processing.GameAnalysis, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return nil, err
	}
	game.mu.Lock()
	defer game.mu.Unlock()
	return processing.AnalyzeGame(game.state), nil
}

// DeleteGame removes a game from the registry.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return errors.Wrapf(errors.ErrGameNotFound, "game %s", gameID)
	}
	delete(gm.games, gameID)
	gm.logf(1, "game %s deleted", gameID)
	return nil
}

// Count returns the number of live games.
func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// RegisterConnection subscribes a player's socket to a game and sends it
// the current state.
func (gm *GameManager) RegisterConnection(gameID, playerID string, sub Subscriber) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	if _, exists := game.subscribers[playerID]; exists {
		return errors.Wrapf(errors.ErrSubscriberExists, "player %s", playerID)
	}
	game.subscribers[playerID] = sub
	game.lastActive = gm.now()
	gm.logf(1, "game %s: player %s connected", gameID, playerID)
	gm.dropped(gameID, game.broadcastLocked())
	return nil
}

// UnregisterConnection removes a player's socket from a game.
func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	if _, exists := game.subscribers[playerID]; exists {
		delete(game.subscribers, playerID)
		gm.logf(1, "game %s: player %s disconnected", gameID, playerID)
	}
}

func (gm *GameManager) dropped(gameID string, playerIDs []string) {
	for _, id := range playerIDs {
		gm.logf(1, "game %s: dropped player %s after failed write", gameID, id)
	}
}

// EvictIdle removes games with no subscribers that have not been touched
// within the idle timeout. It returns the number removed.
func (gm *GameManager) EvictIdle(now time.Time) int {
	if gm.idleTimeout <= 0 {
		return 0
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	evicted := 0
	for id, game := range gm.games {
		game.mu.Lock()
		idle := len(game.subscribers) == 0 && now.Sub(game.lastActive) > gm.idleTimeout
		game.mu.Unlock()
		if idle {
			delete(gm.games, id)
			evicted++
		}
	}
	if evicted > 0 {
		gm.logf(1, "evicted %d idle games", evicted)
	}
	return evicted
}

// StartJanitor evicts idle games every interval until ctx is done.
func (gm *GameManager) StartJanitor(ctx context.Context, interval time.Duration) {
	if gm.idleTimeout <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gm.EvictIdle(gm.now())
			}
		}
	}()
}

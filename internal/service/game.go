// Package service keeps the live games behind the HTTP and websocket API.
package service

import (
	"sync"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/ws"
)

// Subscriber receives game state pushes. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// Game is one live game and the sockets watching it. All access to state
// goes through mu, which also serializes writes to each subscriber.
type Game struct {
	ID string

	mu          sync.Mutex
	state       *engine.GameState
	subscribers map[string]Subscriber // playerID -> connection
	lastActive  time.Time
}

func newGame(id string, state *engine.GameState, now time.Time) *Game {
	return &Game{
		ID:          id,
		state:       state,
		subscribers: make(map[string]Subscriber),
		lastActive:  now,
	}
}

// snapshotLocked renders the current position. Callers hold g.mu.
func (g *Game) snapshotLocked() *output.JSONGame {
	jg := output.GameToJSON(g.state)
	jg.ID = g.ID
	return jg
}

// broadcastLocked pushes the state to every subscriber and drops the ones
// whose write fails. It returns the player IDs dropped. Callers hold g.mu.
func (g *Game) broadcastLocked() []string {
	if len(g.subscribers) == 0 {
		return nil
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.snapshotLocked())
	if err != nil {
		return nil
	}
	var dropped []string
	for playerID, sub := range g.subscribers {
		if err := sub.WriteJSON(msg); err != nil {
			delete(g.subscribers, playerID)
			dropped = append(dropped, playerID)
		}
	}
	return dropped
}

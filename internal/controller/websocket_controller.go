package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-rules-go/internal/middleware"
	"github.com/lgbarn/chess-rules-go/internal/service"
	"github.com/lgbarn/chess-rules-go/internal/ws"
)

// WebSocketController serves the live game socket.
type WebSocketController struct {
	games  *service.GameManager
	logger *log.Logger
}

// NewWebSocketController creates a controller backed by games.
func NewWebSocketController(games *service.GameManager, logger *log.Logger) *WebSocketController {
	return &WebSocketController{
		games:  games,
		logger: logger,
	}
}

// lockedConn serializes writes from broadcasts and from the read loop.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

// HandleConnection subscribes the socket to its game and processes move and
// undo messages until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	conn := &lockedConn{conn: c}

	if err := wsc.games.RegisterConnection(gameID, playerID, conn); err != nil {
		wsc.logger.Printf("game %s: register %s: %v", gameID, playerID, err)
		conn.WriteJSON(ws.ErrorMessage(err.Error())) //nolint:errcheck // closing anyway
		c.Close()
		return
	}
	defer wsc.games.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			conn.WriteJSON(ws.ErrorMessage("malformed message")) //nolint:errcheck // a dead socket ends the loop
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			conn.WriteJSON(ws.ErrorMessage(err.Error())) //nolint:errcheck // a dead socket ends the loop
		}
	}
}

// handleMessage applies one client message. Successful changes reach the
// client through the game broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("move payload: %w", err)
		}
		_, err := wsc.games.MakeMove(gameID, move.Move)
		return err

	case ws.MessageTypeUndo:
		_, err := wsc.games.Undo(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

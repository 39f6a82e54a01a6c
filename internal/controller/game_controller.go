// Package controller exposes the game registry over HTTP and websockets.
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-rules-go/internal/service"
)

// GameController serves the REST game routes.
type GameController struct {
	games *service.GameManager
}

// NewGameController creates a controller backed by games.
func NewGameController(games *service.GameManager) *GameController {
	return &GameController{games: games}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// CreateGame starts a game from the "fen" body field or query parameter.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if req.FEN == "" {
		req.FEN = c.Query("fen")
	}

	game, err := gc.games.CreateGame(req.FEN)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// GetGameState returns the current snapshot of a game.
func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	game, err := gc.games.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(game)
}

// GetLegalMoves lists legal moves, optionally only those from ?from=<square>.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	moves, err := gc.games.LegalMoves(c.Params("gameId"), c.Query("from"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

// MakeMove applies the UCI move in the request body.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil || req.Move == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "move is required",
		})
	}

	game, err := gc.games.MakeMove(c.Params("gameId"), req.Move)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(game)
}

// Undo takes back the last move.
func (gc *GameController) Undo(c *fiber.Ctx) error {
	game, err := gc.games.Undo(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(game)
}

// Analyze reports what has happened in a game so far.
func (gc *GameController) Analyze(c *fiber.Ctx) error {
	analysis, err := gc.games.Analyze(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(analysis)
}

// DeleteGame removes a game.
func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.games.DeleteGame(c.Params("gameId")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Health reports liveness and the number of live games.
func (gc *GameController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"games":  gc.games.Count(),
	})
}

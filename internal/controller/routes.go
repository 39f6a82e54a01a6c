package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/middleware"
	"github.com/lgbarn/chess-rules-go/internal/service"
)

// NewApp builds the fiber application with every route registered.
func NewApp(cfg *config.Config, games *service.GameManager) *fiber.App {
	logger := log.New(cfg.LogFile, "", log.LstdFlags)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.Verbosity < 1,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(logger, cfg.Verbosity))

	gameController := NewGameController(games)
	wsController := NewWebSocketController(games, logger)

	app.Get("/healthz", gameController.Health)

	app.Get("/ws/games/:gameId",
		middleware.EnsurePlayerID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
			Origins:         splitOrigins(cfg.Server.AllowOrigins),
		}))

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/games")
	gameRoutes.Post("/", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Delete("/:gameId", gameController.DeleteGame)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/moves", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Get("/:gameId/analysis", gameController.Analyze)

	return app
}

func splitOrigins(list string) []string {
	var origins []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

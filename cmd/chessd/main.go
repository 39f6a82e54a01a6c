// chessd serves chess games over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/controller"
	"github.com/lgbarn/chess-rules-go/internal/service"
)

const programVersion = "0.1.0"

// janitorInterval is how often idle games are looked for.
const janitorInterval = time.Minute

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessd version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Server.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := log.New(cfg.LogFile, "", log.LstdFlags)
	games := service.NewGameManager(cfg)
	app := controller.NewApp(cfg, games)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	games.StartJanitor(ctx, janitorInterval)

	go func() {
		<-ctx.Done()
		if cfg.Verbosity > 0 {
			logger.Printf("shutting down")
		}
		if err := app.Shutdown(); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	if cfg.Verbosity > 0 {
		logger.Printf("listening on %s", cfg.Server.Addr)
	}
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Fatal(err)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessd [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games over HTTP and websockets.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nRoutes (all need X-Player-ID or ?playerId=):\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games                 new game (body {\"fen\": ...} optional)\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id             game state\n")
	fmt.Fprintf(os.Stderr, "  DELETE /api/games/:id             drop a game\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/moves       legal moves (?from=e2)\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/moves       play {\"move\": \"e2e4\"}\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/undo        take back the last move\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/analysis    replay statistics\n")
	fmt.Fprintf(os.Stderr, "  GET    /ws/games/:id              live updates\n")
}

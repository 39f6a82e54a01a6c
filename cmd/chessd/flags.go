// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Server options
	addr         = flag.String("addr", ":8080", "Listen address")
	allowOrigins = flag.String("origins", "*", "Comma-separated CORS and websocket origins")
	readBuffer   = flag.Int("read-buffer", 1024, "Websocket read buffer size")
	writeBuffer  = flag.Int("write-buffer", 1024, "Websocket write buffer size")

	// Game registry
	maxGames    = flag.Int("max-games", 0, "Maximum live games (0 = unlimited)")
	idleTimeout = flag.Duration("idle", 0, "Evict games untouched for this long (0 = never)")

	// Logging
	logFile   = flag.String("l", "", "Write log to file (default: stderr)")
	appendLog = flag.String("L", "", "Append log to file")
	verbosity = flag.Int("v", 1, "Verbosity: 0=errors, 1=lifecycle, 2=every request")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies the parsed flags into cfg.
func applyFlags(cfg *config.Config) {
	applyServerFlags(cfg)
	applyRegistryFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyServerFlags configures the listener and websocket settings.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *allowOrigins
	cfg.Server.ReadBufferSize = *readBuffer
	cfg.Server.WriteBufferSize = *writeBuffer
}

// applyRegistryFlags configures the game limits.
func applyRegistryFlags(cfg *config.Config) {
	cfg.Server.MaxGames = *maxGames
	cfg.Server.IdleTimeout = *idleTimeout
}

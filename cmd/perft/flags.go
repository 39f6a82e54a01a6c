// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"runtime"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

var (
	// Search options
	fenFlag   = flag.String("fen", engine.InitialFEN, "Start position")
	movesFlag = flag.String("moves", "", "Space-separated UCI moves to play before counting")
	depth     = flag.Int("depth", 4, "Search depth in plies")
	workers   = flag.Int("workers", runtime.NumCPU(), "Parallel workers for the root moves")
	divide    = flag.Bool("divide", false, "Print node counts per root move")

	// Output options
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	showBoard  = flag.Bool("board", false, "Print the position before counting")

	// Logging
	logFile   = flag.String("l", "", "Write timing and diagnostics to file (default: stderr)")
	verbosity = flag.Int("v", 1, "Verbosity: 0=results only, 1=timing")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies the parsed flags into cfg.
func applyFlags(cfg *config.Config) {
	cfg.Perft.FEN = *fenFlag
	cfg.Perft.Depth = *depth
	cfg.Perft.Workers = *workers
	cfg.Perft.Divide = *divide
	cfg.Verbosity = *verbosity
}

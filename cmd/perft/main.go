// perft counts the leaf nodes of the legal move tree from a position.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("perft version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Perft.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if flag.NArg() > 0 {
		os.Exit(runSuites(cfg, flag.Args()))
	}

	opts := runOptions{
		Moves: strings.Fields(*movesFlag),
		JSON:  *jsonOutput,
		Board: *showBoard,
	}
	if err := run(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSuites checks every suite file and returns the process exit code.
func runSuites(cfg *config.Config, paths []string) int {
	failed := 0
	for _, path := range paths {
		f, err := os.Open(path) //nolint:gosec // G304: reading user-specified suite files is the purpose of this tool
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
			return 1
		}
		n, err := runSuite(cfg, f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error in %s: %v\n", path, err)
			return 1
		}
		failed += n
	}
	if failed > 0 {
		fmt.Fprintf(cfg.OutputFile, "%d checks failed\n", failed)
		return 1
	}
	return 0
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
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: perft [options] [suite-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Counts legal move paths to a fixed depth. With suite files, checks\n")
	fmt.Fprintf(os.Stderr, "each EPD line of the form \"<fen> ;D1 20 ;D2 400\" up to -depth.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

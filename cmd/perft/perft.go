package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

// runOptions are the per-invocation settings that are not configuration.
type runOptions struct {
	Moves []string
	JSON  bool
	Board bool
}

// run counts from the configured position and writes the result.
func run(cfg *config.Config, opts runOptions) error {
	s, err := engine.NewGameFromFEN(cfg.Perft.FEN)
	if err != nil {
		return err
	}
	for _, m := range opts.Moves {
		if _, err := s.ApplyUCI(m); err != nil {
			return err
		}
	}

	w := cfg.OutputFile
	if opts.Board && !opts.JSON {
		output.OutputGame(s, cfg)
		fmt.Fprintln(w)
	}

	start := time.Now()
	entries := engine.Divide(s, cfg.Perft.Depth, cfg.Perft.Workers)
	nodes := engine.DivideTotal(entries)
	elapsed := time.Since(start)

	switch {
	case opts.JSON:
		if !cfg.Perft.Divide {
			entries = nil
		}
		err = output.OutputPerftJSON(w, s.FEN(), cfg.Perft.Depth, nodes, entries)
	case cfg.Perft.Divide:
		output.OutputDivide(w, entries)
	default:
		_, err = fmt.Fprintf(w, "Nodes: %d\n", nodes)
	}

	if cfg.Verbosity > 0 {
		logTiming(log.New(cfg.LogFile, "", 0), cfg.Perft.Depth, nodes, elapsed)
	}
	return err
}

func logTiming(logger *log.Logger, depth int, nodes uint64, elapsed time.Duration) {
	nps := uint64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		nps = uint64(float64(nodes) / secs)
	}
	logger.Printf("depth %d: %d nodes in %v (%d nodes/s)", depth, nodes, elapsed.Round(time.Millisecond), nps)
}

// suiteEntry is one line of a perft suite.
type suiteEntry struct {
	FEN    string
	Counts map[int]uint64 // depth -> expected nodes
}

// parseSuiteLine parses "<fen> ;D1 20 ;D2 400". Blank lines and lines
// starting with '#' yield ok == false.
func parseSuiteLine(line string) (entry suiteEntry, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return suiteEntry{}, false, nil
	}

	fields := strings.Split(line, ";")
	entry = suiteEntry{
		FEN:    strings.TrimSpace(fields[0]),
		Counts: make(map[int]uint64),
	}
	for _, f := range fields[1:] {
		parts := strings.Fields(f)
		if len(parts) != 2 || len(parts[0]) < 2 || parts[0][0] != 'D' {
			return suiteEntry{}, false, fmt.Errorf("bad depth field %q: %w", f, errors.ErrInvalidConfig)
		}
		d, err := strconv.Atoi(parts[0][1:])
		if err != nil || d < 1 {
			return suiteEntry{}, false, fmt.Errorf("bad depth %q: %w", parts[0], errors.ErrInvalidConfig)
		}
		n, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return suiteEntry{}, false, fmt.Errorf("bad node count %q: %w", parts[1], errors.ErrInvalidConfig)
		}
		entry.Counts[d] = n
	}
	return entry, true, nil
}

// runSuite checks each suite line up to the configured depth and returns
// the number of mismatches.
func runSuite(cfg *config.Config, r io.Reader) (int, error) {
	w := cfg.OutputFile
	failed := 0
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, ok, err := parseSuiteLine(scanner.Text())
		if err != nil {
			return failed, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		s, err := engine.NewGameFromFEN(entry.FEN)
		if err != nil {
			return failed, fmt.Errorf("line %d: %w", lineNo, err)
		}

		for d := 1; d <= cfg.Perft.Depth; d++ {
			want, listed := entry.Counts[d]
			if !listed {
				continue
			}
			got := engine.DivideTotal(engine.Divide(s, d, cfg.Perft.Workers))
			verdict := "ok"
			if got != want {
				verdict = "FAIL"
				failed++
			}
			fmt.Fprintf(w, "%-4s %s D%d %d (want %d)\n", verdict, entry.FEN, d, got, want)
		}
	}
	return failed, scanner.Err()
}

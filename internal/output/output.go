// Package output renders game positions and perft results as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// DefaultLineLength is the wrap column for move lists.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a token, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line if anything has been written to it.
func (o *OutputWriter) NewLine() {
	if o.lineLength > 0 {
		fmt.Fprintln(o.w)
	}
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes a board diagram, the FEN, the status and the move list.
func OutputGame(s *engine.GameState, cfg *config.Config) {
	w := cfg.OutputFile
	board := s.Board()
	WriteBoard(w, &board)
	fmt.Fprintf(w, "\nFEN: %s\n", s.FEN())
	fmt.Fprintf(w, "%s to move, %s", s.ToMove(), s.Status())
	if result := Result(s); result != "*" {
		fmt.Fprintf(w, " (%s)", result)
	}
	fmt.Fprintln(w)

	if s.Ply() > 0 {
		fmt.Fprintln(w)
		WriteMoveList(w, convertHistory(s), DefaultLineLength)
	}
}

// WriteBoard draws the board from White's side with rank and file labels.
func WriteBoard(w io.Writer, board *chess.Board) {
	for i, row := range boardRows(board) {
		fmt.Fprintf(w, "%d %s\n", chess.BoardSize-i, spaced(row))
	}
	fmt.Fprintln(w, "  a b c d e f g h")
}

func spaced(row string) string {
	var sb strings.Builder
	for i := 0; i < len(row); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(row[i])
	}
	return sb.String()
}

// WriteMoveList writes numbered UCI moves wrapped at maxLineLength.
func WriteMoveList(w io.Writer, moves []JSONMove, maxLineLength int) {
	ow := NewOutputWriter(w, maxLineLength)
	for i, m := range moves {
		switch {
		case m.Color == "white":
			ow.Write(fmt.Sprintf("%d.", m.MoveNumber))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", m.MoveNumber))
		}
		ow.Write(m.UCI)
	}
	ow.NewLine()
}

// OutputDivide writes one "move: nodes" line per root move in UCI order,
// followed by the total.
func OutputDivide(w io.Writer, entries []engine.DivideEntry) {
	counts := make(map[string]uint64, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Move.UCI()
		counts[name] = e.Nodes
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %d\n", name, counts[name])
	}
	fmt.Fprintf(w, "\nTotal: %d\n", engine.DivideTotal(entries))
}

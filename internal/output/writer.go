package output

import (
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// GameWriter is the interface for writing game positions to output.
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(s *engine.GameState) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns a JSON or text writer for w.
func NewGameWriter(w io.Writer, cfg *config.Config, jsonFormat bool) GameWriter {
	if jsonFormat {
		return NewJSONWriterSingle(w)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes games as a diagram followed by the move list.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game as text.
func (tw *TextWriter) WriteGame(s *engine.GameState) error {
	originalOutput := tw.cfg.OutputFile
	tw.cfg.OutputFile = tw.w
	OutputGame(s, tw.cfg)
	tw.cfg.OutputFile = originalOutput
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	single bool // write each game immediately instead of batching
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// NewJSONWriter creates a JSON writer that batches games until Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteGame converts the game now, so later moves do not leak into output.
func (jw *JSONWriter) WriteGame(s *engine.GameState) error {
	jg := GameToJSON(s)
	if jw.single {
		return encode(jw.w, jg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := encode(jw.w, &JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

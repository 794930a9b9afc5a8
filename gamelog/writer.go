// Package gamelog reads and writes Reversi move logs: one "COLOR ROW COL"
// line per applied move, with optional "# key: value" header comments.
package gamelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"reversi-local/types"
)

// FormatMove renders m as a log line without the trailing newline.
func FormatMove(m types.Move) string {
	return fmt.Sprintf("%s %d %d", m.Player, m.Pos.Row, m.Pos.Col)
}

// Writer streams move lines to an io.Writer as they are played.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteMove writes one move line.
func (w *Writer) WriteMove(m types.Move) error {
	_, err := fmt.Fprintln(w.w, FormatMove(m))
	return err
}

// WriteComment writes a '#' comment line, which readers skip.
func (w *Writer) WriteComment(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w.w, "# "+format+"\n", args...)
	return err
}

// Record tracks a game in progress and keeps it on disk as a move log.
type Record struct {
	ID        string
	FilePath  string
	BoardSize int
	Black     string
	White     string
	Date      string
	Result    string
	moves     []types.Move
	file      *os.File
}

// NewRecord creates a new log file in dir and writes the initial header.
// black and white name the players, e.g. "minimax depth 3".
func NewRecord(dir string, boardSize int, black, white string) (*Record, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	// The id suffix keeps names unique when games finish in the same
	// millisecond.
	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%dx%d_%s.txt", time.Now().Format("2006-01-02_150405.000"), boardSize, boardSize, id[:8])
	return createRecord(filepath.Join(dir, filename), id, boardSize, black, white)
}

// CreateRecord creates (or truncates) the log file at path.
func CreateRecord(path string, boardSize int, black, white string) (*Record, error) {
	return createRecord(path, uuid.NewString(), boardSize, black, white)
}

func createRecord(path, id string, boardSize int, black, white string) (*Record, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create game log: %w", err)
	}

	rec := &Record{
		ID:        id,
		FilePath:  path,
		BoardSize: boardSize,
		Black:     black,
		White:     white,
		Date:      time.Now().Format("2006-01-02"),
		Result:    "?",
		file:      f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}
	return rec, nil
}

// AddMove appends a move to the record.
func (r *Record) AddMove(m types.Move) error {
	r.moves = append(r.moves, m)
	return r.flush()
}

// Moves returns the recorded moves.
func (r *Record) Moves() []types.Move {
	out := make([]types.Move, len(r.moves))
	copy(out, r.moves)
	return out
}

// SetResult stores the final outcome in the header.
func (r *Record) SetResult(outcome string) error {
	r.Result = strings.TrimSpace(outcome)
	if r.Result == "" {
		r.Result = "?"
	}
	return r.flush()
}

// Close performs a final flush and closes the file handle.
func (r *Record) Close() {
	if r.file == nil {
		return
	}
	r.flush()
	r.file.Close()
	r.file = nil
}

// flush rewrites the complete log file from scratch.
func (r *Record) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder
	b.WriteString("# reversi-local game record\n")
	b.WriteString(fmt.Sprintf("# id: %s\n", r.ID))
	b.WriteString(fmt.Sprintf("# date: %s\n", r.Date))
	b.WriteString(fmt.Sprintf("# size: %d\n", r.BoardSize))
	b.WriteString(fmt.Sprintf("# black: %s\n", r.Black))
	b.WriteString(fmt.Sprintf("# white: %s\n", r.White))
	b.WriteString(fmt.Sprintf("# result: %s\n", r.Result))
	for _, m := range r.moves {
		b.WriteString(FormatMove(m))
		b.WriteString("\n")
	}

	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

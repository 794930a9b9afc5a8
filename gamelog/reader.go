package gamelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reversi-local/types"
)

// GameInfo holds metadata parsed from a game log header.
type GameInfo struct {
	ID        string
	FilePath  string
	FileName  string
	BoardSize int
	Black     string
	White     string
	Date      string
	Result    string
	MoveCount int
}

// ParseError reports a malformed line in a game log. Line is 1-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseMoves reads "COLOR ROW COL" lines. Blank lines and lines starting
// with '#' are skipped. Coordinates are not range-checked here; replaying
// the moves on a board does that.
func ParseMoves(r io.Reader) ([]types.Move, error) {
	var moves []types.Move
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		m, err := parseMoveLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		moves = append(moves, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return moves, nil
}

// parseMoveLine parses a single "COLOR ROW COL" line.
func parseMoveLine(text string) (types.Move, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return types.Move{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	color := strings.ToLower(fields[0])
	if color != "black" && color != "white" {
		return types.Move{}, fmt.Errorf("color must be black or white")
	}
	player, err := types.ParseColor(color)
	if err != nil {
		return types.Move{}, err
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return types.Move{}, fmt.Errorf("invalid row: %w", err)
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return types.Move{}, fmt.Errorf("invalid column: %w", err)
	}
	return types.Move{Player: player, Pos: types.Position{Row: row, Col: col}}, nil
}

// ReadMoves parses the game log at filePath.
func ReadMoves(filePath string) ([]types.Move, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	moves, err := ParseMoves(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return moves, nil
}

// ParseHeader reads a game log and extracts "# key: value" metadata.
func ParseHeader(filePath string) (*GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	content := string(data)
	props := parseProperties(content)

	boardSize := 8
	if v, ok := props["size"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			boardSize = n
		}
	}

	info := &GameInfo{
		ID:        props["id"],
		FilePath:  filePath,
		FileName:  filepath.Base(filePath),
		BoardSize: boardSize,
		Black:     props["black"],
		White:     props["white"],
		Date:      props["date"],
		Result:    props["result"],
		MoveCount: countMoves(content),
	}
	return info, nil
}

// parseProperties collects "# key: value" comment lines. Later keys win.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return props
}

// countMoves counts the non-comment, non-blank lines.
func countMoves(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			count++
		}
	}
	return count
}

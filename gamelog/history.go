package gamelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ListGames scans a directory for .txt game logs and returns their parsed
// headers, newest first (file names start with a timestamp).
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		info, err := ParseHeader(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		games = append(games, *info)
	}
	return games, nil
}

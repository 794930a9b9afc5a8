// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logFile = "reversi-local/debug.log"

// Init sends log output to the debug log in the xdg state directory. The
// returned function closes the file.
func Init(debug bool) (func() error, error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, fmt.Errorf("failed to locate log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	InitWriter(f, debug)
	log.Debug().Str("path", path).Msg("logging started")
	return f.Close, nil
}

// InitWriter sends log output to w. Debug events are dropped unless debug is
// set.
func InitWriter(w io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"

	"reversi-local/board"
	"reversi-local/engine"
)

var (
	cfgFile    = "reversi-local/config.json"
	historyDir = "reversi-local/history"
)

// ConfigurationError reports a malformed or invalid configuration. It is
// fatal: no game can be set up from it.
type ConfigurationError struct {
	err string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

func newConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{err: fmt.Sprintf(format, args...)}
}

// NewConfigurationError reports err, e.g. a *board.SizeError, as a
// configuration error.
func NewConfigurationError(err error) *ConfigurationError {
	return &ConfigurationError{err: err.Error()}
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BoardColorAlt     int `json:"board_alt"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	LastPlayedColorBG int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackDisc  rune `json:"black"`
	WhiteDisc  rune `json:"white"`
	EmptyCell  rune `json:"empty"`
	LastPlayed rune `json:"last_played"`
}

type Theme struct {
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameSettings holds board and search settings.
type GameSettings struct {
	BoardSize  int `json:"board_size"`
	Depth      int `json:"depth"`
	BlackDepth int `json:"black_depth,omitempty"` // 0 means Depth
	WhiteDepth int `json:"white_depth,omitempty"` // 0 means Depth
}

// HistorySettings controls where finished games are recorded.
type HistorySettings struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir,omitempty"` // empty means the xdg data dir
}

type Config struct {
	Game    GameSettings    `json:"game"`
	Theme   Theme           `json:"theme"`
	History HistorySettings `json:"history"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, newConfigurationError("%s: %v", absPath, err)
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := board.CheckSize(c.Game.BoardSize); err != nil {
		return NewConfigurationError(err)
	}
	for _, d := range []int{c.Game.Depth, c.Game.BlackDepth, c.Game.WhiteDepth} {
		if d < 0 {
			return newConfigurationError("search depth %d is negative", d)
		}
	}
	for _, r := range []rune{c.Theme.Symbols.BlackDisc, c.Theme.Symbols.WhiteDisc, c.Theme.Symbols.EmptyCell} {
		if r < 32 || (r >= 127 && r <= 159) {
			return newConfigurationError("Unicode characters 1-31 and 127-159 are not allowed")
		}
	}
	return nil
}

// GameConfig converts the settings into an engine configuration.
func (c *Config) GameConfig() engine.GameConfig {
	black, white := c.Game.BlackDepth, c.Game.WhiteDepth
	if black == 0 {
		black = c.Game.Depth
	}
	if white == 0 {
		white = c.Game.Depth
	}
	gameCfg := engine.GameConfig{
		BoardSize:  c.Game.BoardSize,
		BlackDepth: black,
		WhiteDepth: white,
	}
	if c.History.Enabled {
		gameCfg.RecordDir = c.HistoryDir()
	}
	return gameCfg
}

// HistoryDir returns the directory finished games are recorded to.
func (c *Config) HistoryDir() string {
	if c.History.Dir != "" {
		return c.History.Dir
	}
	return filepath.Join(xdg.DataHome, historyDir)
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, a)
}

// GameFile is the plain two-integer configuration: board size, then search
// depth.
type GameFile struct {
	BoardSize int
	Depth     int
	HasDepth  bool
}

// ReadGameFile reads a configuration file holding the board size and an
// optional search depth separated by whitespace, e.g. "8 3".
func ReadGameFile(path string) (GameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameFile{}, newConfigurationError("Configuration file %s invalid: %v", path, err)
	}
	return ParseGameFile(path, string(data))
}

// ParseGameFile parses the contents of a two-integer configuration file.
// name is used in error messages.
func ParseGameFile(name, content string) (GameFile, error) {
	fields := strings.Fields(content)
	if len(fields) == 0 || len(fields) > 2 {
		return GameFile{}, newConfigurationError("Configuration file %s invalid: want board size and optional depth", name)
	}
	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return GameFile{}, newConfigurationError("Configuration file %s invalid: board size %q", name, fields[0])
	}
	if err := board.CheckSize(size); err != nil {
		return GameFile{}, newConfigurationError("Configuration file %s invalid: %v", name, err)
	}
	gf := GameFile{BoardSize: size}
	if len(fields) == 2 {
		depth, err := strconv.Atoi(fields[1])
		if err != nil || depth < 0 {
			return GameFile{}, newConfigurationError("Configuration file %s invalid: depth %q", name, fields[1])
		}
		gf.Depth = depth
		gf.HasDepth = true
	}
	return gf, nil
}

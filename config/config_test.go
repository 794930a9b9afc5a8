package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	gc := c.GameConfig()
	if gc.BoardSize != 8 || gc.BlackDepth != 3 || gc.WhiteDepth != 3 {
		t.Errorf("GameConfig = %+v, want 8x8 at depth 3", gc)
	}
	if gc.RecordDir == "" {
		t.Error("history is enabled by default but RecordDir is empty")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"odd size", func(c *Config) { c.Game.BoardSize = 7 }},
		{"small size", func(c *Config) { c.Game.BoardSize = 2 }},
		{"negative depth", func(c *Config) { c.Game.WhiteDepth = -1 }},
		{"control symbol", func(c *Config) { c.Theme.Symbols.EmptyCell = '\t' }},
	}
	for _, tt := range tests {
		c := DefaultConfig
		tt.modify(&c)
		var cfgErr *ConfigurationError
		if err := c.Validate(); !errors.As(err, &cfgErr) {
			t.Errorf("%s: Validate() = %v, want *ConfigurationError", tt.name, err)
		}
	}
}

func TestGameConfigPerColorDepth(t *testing.T) {
	c := DefaultConfig
	c.Game.BlackDepth = 5
	c.History.Enabled = false
	gc := c.GameConfig()
	if gc.BlackDepth != 5 || gc.WhiteDepth != 3 {
		t.Errorf("depths = %d/%d, want 5/3", gc.BlackDepth, gc.WhiteDepth)
	}
	if gc.RecordDir != "" {
		t.Errorf("RecordDir = %q with history disabled", gc.RecordDir)
	}
}

func TestHistoryDirOverride(t *testing.T) {
	c := DefaultConfig
	c.History.Dir = "/tmp/games"
	if got := c.HistoryDir(); got != "/tmp/games" {
		t.Errorf("HistoryDir() = %q", got)
	}
}

func TestCfgFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := DefaultConfig
	c.Game.BoardSize = 6
	c.Game.Depth = 4
	if err := saveCfgFile(path, &c, 0664); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	var read Config
	if err := readCfgFile(path, &read); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if read.Game != c.Game || read.Theme.Symbols != c.Theme.Symbols {
		t.Errorf("read back %+v, want %+v", read, c)
	}
}

func TestParseGameFile(t *testing.T) {
	tests := []struct {
		content   string
		wantSize  int
		wantDepth int
		hasDepth  bool
		wantErr   bool
	}{
		{"8 3\n", 8, 3, true, false},
		{"6", 6, 0, false, false},
		{"  10\n\t2 ", 10, 2, true, false},
		{"", 0, 0, false, true},
		{"7 3", 0, 0, false, true},
		{"eight 3", 0, 0, false, true},
		{"8 -1", 0, 0, false, true},
		{"8 3 1", 0, 0, false, true},
	}
	for _, tt := range tests {
		gf, err := ParseGameFile("reversi.conf", tt.content)
		if tt.wantErr {
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ParseGameFile(%q) error = %v, want *ConfigurationError", tt.content, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseGameFile(%q): %v", tt.content, err)
			continue
		}
		if gf.BoardSize != tt.wantSize || gf.Depth != tt.wantDepth || gf.HasDepth != tt.hasDepth {
			t.Errorf("ParseGameFile(%q) = %+v", tt.content, gf)
		}
	}
}

func TestReadGameFileMissing(t *testing.T) {
	_, err := ReadGameFile(filepath.Join(t.TempDir(), "missing.conf"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
}

func TestReadGameFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reversi.conf")
	if err := os.WriteFile(path, []byte("4 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gf, err := ReadGameFile(path)
	if err != nil {
		t.Fatalf("ReadGameFile: %v", err)
	}
	if gf.BoardSize != 4 || gf.Depth != 2 {
		t.Errorf("ReadGameFile = %+v, want size 4 depth 2", gf)
	}
}

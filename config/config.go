// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/beaconmenu/beacon/draw"
)

// Config holds the application configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Font    FontConfig    `toml:"font"`
	Cursor  CursorConfig  `toml:"cursor"`
	Colors  ColorsConfig  `toml:"colors"`
	Exec    ExecConfig    `toml:"exec"`
	History HistoryConfig `toml:"history"`
}

// WindowConfig holds window geometry settings. All sizes are pixels.
type WindowConfig struct {
	Width        int  `toml:"width"`         // result column width
	LineHeight   int  `toml:"line_height"`   // height of the query line and each row
	MaxHeight    int  `toml:"max_height"`    // window height ceiling
	DescWidth    int  `toml:"desc_width"`    // extra width when the description pane opens
	HorizPadding int  `toml:"horiz_padding"` // left padding inside a row
	LineGap      int  `toml:"line_gap"`      // inset of horizontal rules in the pane
	X            int  `toml:"x"`             // window position
	Y            int  `toml:"y"`
	AutoCenter   bool `toml:"auto_center"` // shift left when the pane opens so the window stays centered
}

// FontConfig holds font file paths. Empty bold/desc paths fall back to
// the main font.
type FontConfig struct {
	Font         string `toml:"font"`
	BoldFont     string `toml:"bold_font"`
	DescFont     string `toml:"desc_font"`
	DescBoldFont string `toml:"desc_bold_font"`
}

// CursorConfig holds query cursor settings.
type CursorConfig struct {
	Style string `toml:"style"` // "underline" or "bar"
}

// ColorsConfig holds the palette as "#RRGGBB" strings.
type ColorsConfig struct {
	QueryFg     string `toml:"query_fg"`
	QueryBg     string `toml:"query_bg"`
	ResultFg    string `toml:"result_fg"`
	ResultBg    string `toml:"result_bg"`
	HighlightFg string `toml:"highlight_fg"`
	HighlightBg string `toml:"highlight_bg"`
	TitleFg     string `toml:"title_fg"`
	TitleBg     string `toml:"title_bg"`
	Rule        string `toml:"rule"`
}

// ExecConfig holds the handler process settings.
type ExecConfig struct {
	Cmd string `toml:"cmd"` // handler executable fed queries on stdin
}

// HistoryConfig holds launch history settings.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:        500,
			LineHeight:   30,
			MaxHeight:    800,
			DescWidth:    500,
			HorizPadding: 5,
			LineGap:      10,
			X:            100,
			Y:            100,
			AutoCenter:   false,
		},
		Cursor: CursorConfig{
			Style: "underline",
		},
		Colors: ColorsConfig{
			QueryFg:     "#1a1a1a",
			QueryBg:     "#f2f2f2",
			ResultFg:    "#1a1a1a",
			ResultBg:    "#ffffff",
			HighlightFg: "#ffffff",
			HighlightBg: "#005577",
			TitleFg:     "#444444",
			TitleBg:     "#e6e6e6",
			Rule:        "#aaaaaa",
		},
		Exec: ExecConfig{
			Cmd: defaultCmdPath(),
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  defaultDBPath(),
		},
	}
}

func defaultCmdPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cmd"
	}
	return filepath.Join(home, ".config", "beacon", "cmd")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "beacon.db"
	}
	return filepath.Join(home, ".local", "share", "beacon", "beacon.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "beacon.toml"
	}
	return filepath.Join(home, ".config", "beacon", "beacon.toml")
}

// Load loads configuration from the default path, merging with defaults
// and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env
// overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Exec.Cmd = expandPath(cfg.Exec.Cmd)
	cfg.History.DBPath = expandPath(cfg.History.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// config. Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BEACON_CMD"); v != "" {
		cfg.Exec.Cmd = v
	}
	if v := os.Getenv("BEACON_DB_PATH"); v != "" {
		cfg.History.DBPath = v
	}
	if v := os.Getenv("BEACON_FONT"); v != "" {
		cfg.Font.Font = v
	}
	if v := os.Getenv("BEACON_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Width = n
		}
	}
	if v := os.Getenv("BEACON_MAX_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.MaxHeight = n
		}
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 {
		return errors.New("window width must be positive")
	}
	if c.Window.LineHeight <= 0 {
		return errors.New("line_height must be positive")
	}
	if c.Window.MaxHeight < 2*c.Window.LineHeight {
		return errors.New("max_height must fit the query line and at least one result row")
	}
	if c.Window.DescWidth <= 0 {
		return errors.New("desc_width must be positive")
	}
	if c.Window.HorizPadding < 0 || c.Window.LineGap < 0 {
		return errors.New("paddings must not be negative")
	}
	if c.Cursor.Style != "underline" && c.Cursor.Style != "bar" {
		return fmt.Errorf("cursor style must be underline or bar, got %q", c.Cursor.Style)
	}
	if c.Exec.Cmd == "" {
		return errors.New("exec cmd must be set")
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return errors.New("history db_path must be set when history is enabled")
	}
	for field, v := range map[string]string{
		"query_fg": c.Colors.QueryFg, "query_bg": c.Colors.QueryBg,
		"result_fg": c.Colors.ResultFg, "result_bg": c.Colors.ResultBg,
		"highlight_fg": c.Colors.HighlightFg, "highlight_bg": c.Colors.HighlightBg,
		"title_fg": c.Colors.TitleFg, "title_bg": c.Colors.TitleBg,
		"rule": c.Colors.Rule,
	} {
		if _, err := ParseColor(v); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

// ParseColor converts a "#RRGGBB" string into an opaque draw color.
func ParseColor(s string) (draw.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("color must be #RRGGBB, got %q", s)
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color must be #RRGGBB, got %q", s)
	}
	return draw.RGB(uint8(n>>16), uint8(n>>8), uint8(n)), nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

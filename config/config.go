// Package config loads editor settings from YAML with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/view"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "pixelart.yaml"

// ErrEmptyConfig is returned by Reload for a file with no content, which is
// what a watcher sees mid-save when an editor truncates before writing.
var ErrEmptyConfig = errors.New("config: empty file")

type GridSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ZoomSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type Config struct {
	Grid         GridSpec `yaml:"grid"`
	CellSize     float64  `yaml:"cell_size"`
	Zoom         ZoomSpec `yaml:"zoom"`
	DefaultColor string   `yaml:"default_color"`
	DefaultTool  string   `yaml:"default_tool"`
	Palette      string   `yaml:"palette"`
	ExportDir    string   `yaml:"export_dir"`
	MacrosDir    string   `yaml:"macros_dir"`
	LogLevel     string   `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Grid:         GridSpec{Width: grid.DefaultWidth, Height: grid.DefaultHeight},
		CellSize:     editor.DefaultCellSize,
		Zoom:         ZoomSpec{Min: view.DefaultLimits.Min, Max: view.DefaultLimits.Max},
		DefaultColor: string(grid.DefaultSample),
		DefaultTool:  "pencil",
		Palette:      "default",
		ExportDir:    "exports",
		MacrosDir:    "macros",
		LogLevel:     "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Reload reads path for a hot reload. Unlike Load, a missing or blank file
// is an error rather than a reset to defaults.
func Reload(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reload %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrEmptyConfig, path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.Width > grid.MaxDimension || c.Grid.Height > grid.MaxDimension {
		return fmt.Errorf("config: grid %dx%d exceeds %d per side", c.Grid.Width, c.Grid.Height, grid.MaxDimension)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("config: cell_size must be positive, got %v", c.CellSize)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Min > c.Zoom.Max {
		return fmt.Errorf("config: zoom range [%v, %v] is invalid", c.Zoom.Min, c.Zoom.Max)
	}
	if _, err := grid.ParseColor(c.DefaultColor); err != nil {
		return fmt.Errorf("config: default_color: %w", err)
	}
	if _, err := editor.ParseTool(c.DefaultTool); err != nil {
		return fmt.Errorf("config: default_tool: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

func (c Config) Limits() view.Limits {
	return view.Limits{Min: c.Zoom.Min, Max: c.Zoom.Max}
}

func (c Config) Tool() editor.Tool {
	t, _ := editor.ParseTool(c.DefaultTool)
	return t
}

func (c Config) Color() grid.Color {
	col, err := grid.ParseColor(c.DefaultColor)
	if err != nil {
		return grid.DefaultSample
	}
	return col
}

func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// LoadEnv loads a .env file into the process environment if one exists.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
}

// PathFromEnv returns PIXELART_CONFIG or fallback.
func PathFromEnv(fallback string) string {
	if p := strings.TrimSpace(os.Getenv("PIXELART_CONFIG")); p != "" {
		return p
	}
	return fallback
}

// ApplyEnv overrides fields from PIXELART_* variables and revalidates.
func ApplyEnv(c *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"PIXELART_WIDTH", &c.Grid.Width},
		{"PIXELART_HEIGHT", &c.Grid.Height},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v, ok := os.LookupEnv("PIXELART_CELL_SIZE"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: PIXELART_CELL_SIZE: %w", err)
		}
		c.CellSize = f
	}
	if v, ok := os.LookupEnv("PIXELART_LOG_LEVEL"); ok {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("PIXELART_EXPORT_DIR"); ok {
		c.ExportDir = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("PIXELART_PALETTE"); ok {
		c.Palette = strings.TrimSpace(v)
	}
	return c.Validate()
}

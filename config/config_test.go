package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/grid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 64, cfg.Grid.Width)
	assert.Equal(t, 64, cfg.Grid.Height)
	assert.Equal(t, 10.0, cfg.CellSize)
	assert.Equal(t, 0.5, cfg.Limits().Min)
	assert.Equal(t, 5.0, cfg.Limits().Max)
	assert.Equal(t, editor.ToolPencil, cfg.Tool())
	assert.Equal(t, grid.Color("#000000"), cfg.Color())
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelart.yaml")
	data := []byte(`
grid:
  width: 16
  height: 8
default_color: "#f0a"
default_tool: fill
palette: pico8
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Grid.Width)
	assert.Equal(t, 8, cfg.Grid.Height)
	assert.Equal(t, 10.0, cfg.CellSize, "unset keys keep defaults")
	assert.Equal(t, grid.Color("#FF00AA"), cfg.Color())
	assert.Equal(t, editor.ToolFill, cfg.Tool())
	assert.Equal(t, "pico8", cfg.Palette)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "grid: {width: 0, height: 4}"},
		{"huge grid", "grid: {width: 200000, height: 200000}"},
		{"negative cell size", "cell_size: -1"},
		{"inverted zoom", "zoom: {min: 3, max: 1}"},
		{"zero zoom", "zoom: {min: 0, max: 1}"},
		{"bad color", "default_color: red"},
		{"bad tool", "default_tool: brush"},
		{"bad level", "log_level: loud"},
		{"bad yaml", "grid: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PIXELART_WIDTH", "32")
	t.Setenv("PIXELART_HEIGHT", " 24 ")
	t.Setenv("PIXELART_CELL_SIZE", "12.5")
	t.Setenv("PIXELART_LOG_LEVEL", "debug")
	t.Setenv("PIXELART_EXPORT_DIR", "out")
	t.Setenv("PIXELART_PALETTE", "grayscale")

	cfg := Default()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, 32, cfg.Grid.Width)
	assert.Equal(t, 24, cfg.Grid.Height)
	assert.Equal(t, 12.5, cfg.CellSize)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
	assert.Equal(t, "out", cfg.ExportDir)
	assert.Equal(t, "grayscale", cfg.Palette)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("PIXELART_WIDTH", "wide")
	cfg := Default()
	require.Error(t, ApplyEnv(&cfg))
}

func TestApplyEnvRejectsOversizedGrid(t *testing.T) {
	t.Setenv("PIXELART_WIDTH", "200000")
	t.Setenv("PIXELART_HEIGHT", "200000")
	cfg := Default()
	require.Error(t, ApplyEnv(&cfg))
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelart.yaml")

	_, err := Reload(path)
	require.Error(t, err, "missing file is not a reset to defaults")

	for _, blank := range []string{"", "  \n\t\n"} {
		require.NoError(t, os.WriteFile(path, []byte(blank), 0o644))
		_, err = Reload(path)
		require.ErrorIs(t, err, ErrEmptyConfig)
	}

	require.NoError(t, os.WriteFile(path, []byte("palette: pico8\ncell_size: 4\n"), 0o644))
	cfg, err := Reload(path)
	require.NoError(t, err)
	assert.Equal(t, "pico8", cfg.Palette)
	assert.Equal(t, 4.0, cfg.CellSize)

	require.NoError(t, os.WriteFile(path, []byte("cell_size: 0\n"), 0o644))
	_, err = Reload(path)
	require.Error(t, err)
}

func TestApplyEnvRevalidates(t *testing.T) {
	t.Setenv("PIXELART_WIDTH", "-3")
	cfg := Default()
	require.Error(t, ApplyEnv(&cfg))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PIXELART_CONFIG=custom.yaml\n"), 0o644))
	t.Setenv("PIXELART_CONFIG", "")
	require.NoError(t, os.Unsetenv("PIXELART_CONFIG"))

	LoadEnv(path)
	assert.Equal(t, "custom.yaml", PathFromEnv(DefaultPath))
}

func TestPathFromEnvFallback(t *testing.T) {
	t.Setenv("PIXELART_CONFIG", "  ")
	assert.Equal(t, DefaultPath, PathFromEnv(DefaultPath))
}

func TestWatcherReportsConfigAndMacroEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ignored := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(ignored, []byte("x"), 0o644))

	cfgPath := filepath.Join(dir, "pixelart.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("palette: pico8\n"), 0o644))
	expectEvent(t, w, cfgPath)

	macroPath := filepath.Join(dir, "stripes.tengo")
	require.NoError(t, os.WriteFile(macroPath, []byte("x := 1\n"), 0o644))
	expectEvent(t, w, macroPath)
}

func TestWatcherReportsOnlyAfterWritesSettle(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcherQuiet(150*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "pixelart.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("palette: pico8\ncell_size: 4\n"), 0o644))

	expectEvent(t, w, path)
	cfg, err := Reload(path)
	require.NoError(t, err, "the event arrives after the final write")
	assert.Equal(t, "pico8", cfg.Palette)
	assert.Equal(t, 4.0, cfg.CellSize)

	select {
	case got := <-w.Events:
		t.Fatalf("burst reported twice, extra event for %s", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherReportsEachPathSeparately(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcherQuiet(50*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.tengo")
	require.NoError(t, os.WriteFile(a, []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("x := 1\n"), 0o644))

	seen := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case got := <-w.Events:
			seen[got] = true
		case <-timeout:
			t.Fatalf("saw only %v", seen)
		}
	}
	assert.True(t, seen[a])
	assert.True(t, seen[b])
}

func TestWatcherCloseWithPendingTimer(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcherQuiet(time.Second, dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pixelart.yaml"), []byte("x: 1\n"), 0o644))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Close())
	_, ok := <-w.Events
	assert.False(t, ok)
}

func expectEvent(t *testing.T, w *Watcher, want string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got == want {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestIsMacroFile(t *testing.T) {
	assert.True(t, IsMacroFile("a/b/stripes.TENGO"))
	assert.False(t, IsMacroFile("pixelart.yaml"))
}

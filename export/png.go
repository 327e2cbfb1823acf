// Package export writes snapshots of a grid to PNG. It only produces output;
// nothing here reads a grid back.
package export

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/milk9111/pixelart/grid"
)

type Options struct {
	// CellSize is the edge length of one cell in output pixels.
	CellSize int
	// Background fills unpainted cells; None leaves them transparent.
	Background grid.Color
	GridLines  bool
	LineColor  grid.Color
}

func DefaultOptions() Options {
	return Options{CellSize: 10, LineColor: "#CCCCCC"}
}

// Render draws the grid with gg's software rasterizer.
func Render(g *grid.Grid, o Options) (image.Image, error) {
	dc, err := draw(g, o)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

func draw(g *grid.Grid, o Options) (*gg.Context, error) {
	if g == nil {
		return nil, fmt.Errorf("export: nil grid")
	}
	if o.CellSize <= 0 {
		return nil, fmt.Errorf("export: cell size must be positive, got %d", o.CellSize)
	}
	cs := float64(o.CellSize)
	w, h := g.Width()*o.CellSize, g.Height()*o.CellSize

	dc := gg.NewContext(w, h)

	if o.Background != grid.None {
		dc.ClearWithColor(gg.Hex(string(o.Background)))
	} else {
		dc.Clear()
	}

	var fillErr error
	g.Each(func(x, y int, c grid.Color) {
		if c == grid.None || fillErr != nil {
			return
		}
		dc.SetHexColor(string(c))
		dc.DrawRectangle(float64(x)*cs, float64(y)*cs, cs, cs)
		if err := dc.Fill(); err != nil {
			fillErr = fmt.Errorf("export: fill cell %d,%d: %w", x, y, err)
		}
	})
	if fillErr != nil {
		_ = dc.Close()
		return nil, fillErr
	}

	if o.GridLines {
		dc.SetHexColor(string(o.LineColor))
		dc.SetLineWidth(1)
		for x := 1; x < g.Width(); x++ {
			dc.DrawLine(float64(x)*cs, 0, float64(x)*cs, float64(h))
		}
		for y := 1; y < g.Height(); y++ {
			dc.DrawLine(0, float64(y)*cs, float64(w), float64(y)*cs)
		}
		if err := dc.Stroke(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("export: grid lines: %w", err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		_ = dc.Close()
		return nil, fmt.Errorf("export: flush: %w", err)
	}
	return dc, nil
}

func WritePNG(w io.Writer, g *grid.Grid, o Options) error {
	dc, err := draw(g, o)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the snapshot to path, creating parent directories.
func SavePNG(path string, g *grid.Grid, o Options) error {
	if path == "" {
		return fmt.Errorf("export: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := WritePNG(bw, g, o); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: %w", err)
	}
	return f.Close()
}

// Package grid holds the pixel canvas: a fixed-size, row-major array of
// optional colors with bounds-checked mutation and flood fill.
//
// Out-of-bounds coordinates are never an error. Stray pointer events land
// outside the canvas all the time, so every mutator silently ignores them.
package grid

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth  = 64
	DefaultHeight = 64

	// MaxDimension caps each side so a bad size cannot exhaust memory.
	MaxDimension = 1024
)

var ErrInvalidSize = errors.New("grid: invalid size")

// Grid is a Width x Height canvas. Dimensions are fixed at creation.
type Grid struct {
	width  int
	height int
	cells  []Color
}

func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

// At returns the raw cell value; ok is false outside the grid.
func (g *Grid) At(x, y int) (Color, bool) {
	if !g.InBounds(x, y) {
		return None, false
	}
	return g.cells[g.index(x, y)], true
}

// Set paints a cell and reports whether its value changed.
func (g *Grid) Set(x, y int, c Color) bool {
	if !g.InBounds(x, y) {
		return false
	}
	idx := g.index(x, y)
	if g.cells[idx] == c {
		return false
	}
	g.cells[idx] = c
	return true
}

// Erase clears a cell back to None.
func (g *Grid) Erase(x, y int) bool {
	return g.Set(x, y, None)
}

// Sample is the eyedropper read: unpainted or out-of-range cells report DefaultSample.
func (g *Grid) Sample(x, y int) Color {
	c, ok := g.At(x, y)
	if !ok || c == None {
		return DefaultSample
	}
	return c
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, c Color)) {
	for y := 0; y < g.height; y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x, c := range row {
			fn(x, y, c)
		}
	}
}

// Row returns a copy of row y, or nil outside the grid.
func (g *Grid) Row(y int) []Color {
	if y < 0 || y >= g.height {
		return nil
	}
	out := make([]Color, g.width)
	copy(out, g.cells[y*g.width:(y+1)*g.width])
	return out
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Color) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Clear erases every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = None
	}
}

func (g *Grid) Clone() *Grid {
	cells := make([]Color, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

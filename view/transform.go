// Package view maps between screen space and grid space under pan and zoom.
package view

import "math"

// Transform is pan-then-scale: screen = grid*cellSize*Zoom + Pan.
type Transform struct {
	Zoom float64
	PanX float64
	PanY float64
}

func Identity() Transform { return Transform{Zoom: 1} }

// Limits bounds the zoom factor.
type Limits struct {
	Min float64
	Max float64
}

var DefaultLimits = Limits{Min: 0.5, Max: 5.0}

// wheelScale converts a wheel delta into a zoom step.
const wheelScale = 0.001

func (l Limits) Clamp(z float64) float64 {
	if z < l.Min {
		return l.Min
	}
	if z > l.Max {
		return l.Max
	}
	return z
}

func (t Transform) zoom() float64 {
	if t.Zoom <= 0 {
		return 1
	}
	return t.Zoom
}

// ScreenToGrid returns the cell under a screen point. The result is not
// bounds-checked; callers must test it against the grid before mutating.
func ScreenToGrid(sx, sy float64, t Transform, cellSize float64) (int, int) {
	z := t.zoom()
	wx := (sx - t.PanX) / z
	wy := (sy - t.PanY) / z
	return int(math.Floor(wx / cellSize)), int(math.Floor(wy / cellSize))
}

// GridToScreen returns the top-left screen position of a cell.
func GridToScreen(gx, gy int, t Transform, cellSize float64) (float64, float64) {
	z := t.zoom()
	return float64(gx)*cellSize*z + t.PanX, float64(gy)*cellSize*z + t.PanY
}

// Wheel applies a wheel delta: scrolling down (positive) zooms out.
func (t *Transform) Wheel(deltaY float64, l Limits) {
	t.Zoom = l.Clamp(t.zoom() - deltaY*wheelScale)
}

// ZoomAt scales the zoom by factor while keeping the point under (sx, sy) fixed.
func (t *Transform) ZoomAt(factor, sx, sy float64, l Limits) {
	old := t.zoom()
	next := l.Clamp(old * factor)
	if next == old {
		return
	}
	worldX := (sx - t.PanX) / old
	worldY := (sy - t.PanY) / old
	t.Zoom = next
	t.PanX = sx - worldX*next
	t.PanY = sy - worldY*next
}

func (t *Transform) PanBy(dx, dy float64) {
	t.PanX += dx
	t.PanY += dy
}

// Package render turns a grid into images for whatever surface the host draws on.
package render

import (
	"image"

	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/view"
)

// Rasterize produces one pixel per cell. Unpainted cells are transparent.
func Rasterize(g *grid.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	RasterizeInto(img, g)
	return img
}

// RasterizeInto overwrites dst, which must be at least Width x Height, with the grid.
func RasterizeInto(dst *image.RGBA, g *grid.Grid) {
	g.Each(func(x, y int, c grid.Color) {
		dst.SetRGBA(x, y, c.RGBA())
	})
}

// CellRect returns the screen rectangle a cell covers under t.
func CellRect(x, y int, t view.Transform, cellSize float64) (x0, y0, x1, y1 float64) {
	x0, y0 = view.GridToScreen(x, y, t, cellSize)
	x1, y1 = view.GridToScreen(x+1, y+1, t, cellSize)
	return
}

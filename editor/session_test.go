package editor

import (
	"testing"

	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	red   grid.Color = "#FF0000"
	green grid.Color = "#00FF00"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	g, err := grid.New(grid.DefaultWidth, grid.DefaultHeight)
	require.NoError(t, err)
	s, err := NewSession(g, opts...)
	require.NoError(t, err)
	return s
}

// center of cell (x, y) at identity view with the default cell size
func at(x, y int) (float64, float64) {
	return float64(x)*DefaultCellSize + 5, float64(y)*DefaultCellSize + 5
}

func TestNewSessionDefaults(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, ToolPencil, s.Tool())
	assert.Equal(t, grid.Color("#000000"), s.Color())
	assert.Equal(t, view.Identity(), s.View)
	assert.True(t, s.Changed())
	assert.False(t, s.Changed())
}

func TestNewSessionValidation(t *testing.T) {
	g, err := grid.New(4, 4)
	require.NoError(t, err)

	cases := []struct {
		name string
		opts []Option
	}{
		{"bad_color", []Option{WithColor("red")}},
		{"bad_tool", []Option{WithTool(Tool(42))}},
		{"bad_cell", []Option{WithCellSize(0)}},
		{"bad_limits", []Option{WithLimits(view.Limits{Min: 2, Max: 1})}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewSession(g, c.opts...)
			require.Error(t, err)
		})
	}

	_, err = NewSession(nil)
	require.Error(t, err)
}

func TestPencilPaintsAndDrags(t *testing.T) {
	s := newSession(t, WithColor(red))
	s.Changed()

	sx, sy := at(3, 4)
	s.PointerDown(sx, sy, ButtonLeft)
	assert.Equal(t, red, s.Grid.Sample(3, 4))
	assert.True(t, s.Changed())

	for x := 4; x < 8; x++ {
		sx, sy = at(x, 4)
		s.PointerMove(sx, sy, MaskLeft)
	}
	for x := 3; x < 8; x++ {
		assert.Equal(t, red, s.Grid.Sample(x, 4))
	}
	assert.Equal(t, ToolPencil, s.Tool())

	// hover without a button does nothing
	sx, sy = at(9, 9)
	s.PointerMove(sx, sy, 0)
	c, _ := s.Grid.At(9, 9)
	assert.Equal(t, grid.None, c)
}

func TestEraserClearsCells(t *testing.T) {
	s := newSession(t, WithTool(ToolEraser))
	s.Grid.Set(1, 1, red)
	s.Grid.Set(2, 1, red)

	sx, sy := at(1, 1)
	s.PointerDown(sx, sy, ButtonLeft)
	sx, sy = at(2, 1)
	s.PointerMove(sx, sy, MaskLeft)

	assert.Equal(t, 64*64, s.Grid.Count(grid.None))
	assert.Equal(t, ToolEraser, s.Tool())
}

func TestEyedropperPicksAndSwitchesToPencil(t *testing.T) {
	s := newSession(t, WithTool(ToolEyedropper), WithColor(green))
	s.Grid.Set(5, 5, red)

	sx, sy := at(5, 5)
	s.PointerDown(sx, sy, ButtonLeft)
	assert.Equal(t, red, s.Color())
	assert.Equal(t, ToolPencil, s.Tool())
	assert.Equal(t, red, s.Grid.Sample(5, 5))
}

func TestEyedropperOnEmptyCellPicksBlack(t *testing.T) {
	s := newSession(t, WithTool(ToolEyedropper), WithColor(green))
	sx, sy := at(0, 0)
	s.PointerDown(sx, sy, ButtonLeft)
	assert.Equal(t, grid.DefaultSample, s.Color())
	c, _ := s.Grid.At(0, 0)
	assert.Equal(t, grid.None, c, "sampling never writes the grid")
}

func TestFillTool(t *testing.T) {
	s := newSession(t, WithTool(ToolFill), WithColor(red))
	sx, sy := at(10, 10)
	s.PointerDown(sx, sy, ButtonLeft)
	assert.Equal(t, 4096, s.Grid.Count(red))
	assert.Equal(t, ToolFill, s.Tool())

	// dragging with fill does not repaint
	require.NoError(t, s.SetColor("#00ff00"))
	sx, sy = at(11, 10)
	s.PointerMove(sx, sy, MaskLeft)
	assert.Equal(t, 4096, s.Grid.Count(red))
}

func TestOutOfBoundsPressIsIgnored(t *testing.T) {
	s := newSession(t, WithTool(ToolFill), WithColor(red))
	before := s.Grid.Clone()
	s.PointerDown(-3, 10, ButtonLeft)
	s.PointerDown(640, 10, ButtonLeft)
	s.PointerDown(10, 10000, ButtonLeft)
	assert.True(t, before.Equal(s.Grid))
}

func TestMiddleDragPansWithoutPainting(t *testing.T) {
	s := newSession(t, WithColor(red))
	s.PointerDown(100, 100, ButtonMiddle)
	require.True(t, s.Panning())
	s.PointerMove(130, 90, MaskMiddle|MaskLeft)
	s.PointerMove(137, 88, MaskMiddle|MaskLeft)
	s.PointerUp(ButtonMiddle)

	assert.False(t, s.Panning())
	assert.Equal(t, 37.0, s.View.PanX)
	assert.Equal(t, -12.0, s.View.PanY)
	assert.Equal(t, 4096, s.Grid.Count(grid.None))

	// after panning, a press lands on the shifted cell
	s.PointerDown(37+5, -12+5, ButtonLeft)
	assert.Equal(t, red, s.Grid.Sample(0, 0))
}

func TestWheelZoomChangesMapping(t *testing.T) {
	s := newSession(t, WithColor(red))
	s.Wheel(-1000) // zoom 2
	assert.InDelta(t, 2.0, s.View.Zoom, 1e-9)

	s.PointerDown(25, 25, ButtonLeft) // 25/2 = 12.5 -> cell 1
	assert.Equal(t, red, s.Grid.Sample(1, 1))

	s.Wheel(1e6)
	assert.Equal(t, view.DefaultLimits.Min, s.View.Zoom)
}

func TestZoomAtKeepsCellUnderCursor(t *testing.T) {
	s := newSession(t)
	sx, sy := at(4, 7)
	s.Changed()

	s.ZoomAt(2, sx, sy)
	assert.InDelta(t, 2.0, s.View.Zoom, 1e-9)
	assert.True(t, s.Changed())
	gx, gy, ok := s.CellAt(sx, sy)
	require.True(t, ok)
	assert.Equal(t, 4, gx)
	assert.Equal(t, 7, gy)

	s.ZoomAt(100, sx, sy)
	assert.Equal(t, view.DefaultLimits.Max, s.View.Zoom)
	s.Changed()
	s.ZoomAt(100, sx, sy)
	assert.False(t, s.Changed(), "clamped zoom is not a change")
	gx, gy, _ = s.CellAt(sx, sy)
	assert.Equal(t, 4, gx)
	assert.Equal(t, 7, gy)
}

func TestRightButtonIsIgnored(t *testing.T) {
	s := newSession(t, WithColor(red))
	sx, sy := at(2, 2)
	s.PointerDown(sx, sy, ButtonRight)
	assert.Equal(t, 4096, s.Grid.Count(grid.None))
}

func TestSetColorRejectsGarbage(t *testing.T) {
	s := newSession(t)
	require.ErrorIs(t, s.SetColor("blue"), grid.ErrInvalidColor)
	require.NoError(t, s.SetColor("#abc"))
	assert.Equal(t, grid.Color("#AABBCC"), s.Color())
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		got, err := ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
	_, err := ParseTool("lasso")
	require.ErrorIs(t, err, ErrUnknownTool)
	assert.Equal(t, "Unknown", Tool(9).String())
}

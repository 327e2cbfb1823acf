package editor

import (
	"errors"
	"fmt"
	"strings"
)

// Tool selects what a primary-button press does to the grid.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolEyedropper
	ToolFill
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPencil, ToolEraser, ToolEyedropper, ToolFill}

var ErrUnknownTool = errors.New("editor: unknown tool")

func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "Pencil"
	case ToolEraser:
		return "Eraser"
	case ToolEyedropper:
		return "Eyedropper"
	case ToolFill:
		return "Fill"
	default:
		return "Unknown"
	}
}

func (t Tool) Valid() bool {
	return t >= ToolPencil && t <= ToolFill
}

// ParseTool accepts a tool name in any case.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pencil":
		return ToolPencil, nil
	case "eraser":
		return ToolEraser, nil
	case "eyedropper":
		return ToolEyedropper, nil
	case "fill":
		return ToolFill, nil
	}
	return ToolPencil, fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

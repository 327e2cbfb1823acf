// Package macro runs tengo scripts against an editor session's grid.
//
// Scripts see a single global, canvas, with the grid dimensions, the
// session's active color and functions that route through the grid's own
// bounds-checked operations:
//
//	canvas.get(x, y)          // "#RRGGBB", or "" for an empty cell
//	canvas.set(x, y, color)   // true if the cell changed
//	canvas.erase(x, y)
//	canvas.fill(x, y, color)  // number of cells filled
//
// The math, text and fmt standard modules may be imported.
package macro

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/grid"
)

// Timeout bounds a single macro run.
var Timeout = 2 * time.Second

var modules = []string{"math", "text", "fmt"}

func Run(src []byte, s *editor.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	return RunContext(ctx, src, s)
}

func RunContext(ctx context.Context, src []byte, s *editor.Session) error {
	if s == nil || s.Grid == nil {
		return fmt.Errorf("macro: nil session")
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(modules...))
	if err := script.Add("canvas", buildCanvas(s)); err != nil {
		return fmt.Errorf("macro: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("macro: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("macro: run: %w", err)
	}
	return nil
}

func RunFile(path string, s *editor.Session) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("macro: read %s: %w", path, err)
	}
	return Run(src, s)
}

func buildCanvas(s *editor.Session) *tengo.ImmutableMap {
	g := s.Grid
	values := map[string]tengo.Object{
		"width":  &tengo.Int{Value: int64(g.Width())},
		"height": &tengo.Int{Value: int64(g.Height())},
		"color":  &tengo.String{Value: string(s.Color())},
	}

	values["get"] = &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("get", args, 2)
		if err != nil {
			return nil, err
		}
		c, _ := g.At(x, y)
		return &tengo.String{Value: string(c)}, nil
	}}

	values["set"] = &tengo.UserFunction{Name: "set", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("set", args, 3)
		if err != nil {
			return nil, err
		}
		c, err := colorArg(args[2])
		if err != nil {
			return nil, err
		}
		return boolObject(markIf(s, g.Set(x, y, c))), nil
	}}

	values["erase"] = &tengo.UserFunction{Name: "erase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("erase", args, 2)
		if err != nil {
			return nil, err
		}
		return boolObject(markIf(s, g.Erase(x, y))), nil
	}}

	values["fill"] = &tengo.UserFunction{Name: "fill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("fill", args, 3)
		if err != nil {
			return nil, err
		}
		c, err := colorArg(args[2])
		if err != nil {
			return nil, err
		}
		n := g.FloodFill(x, y, c)
		markIf(s, n > 0)
		return &tengo.Int{Value: int64(n)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func point(name string, args []tengo.Object, want int) (int, int, error) {
	if len(args) != want {
		return 0, 0, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: name + ".x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: name + ".y", Expected: "int", Found: args[1].TypeName()}
	}
	return x, y, nil
}

func colorArg(obj tengo.Object) (grid.Color, error) {
	c, err := grid.ParseColor(objectAsString(obj))
	if err != nil {
		return grid.None, err
	}
	return c, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func markIf(s *editor.Session, changed bool) bool {
	if changed {
		s.MarkDirty()
	}
	return changed
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

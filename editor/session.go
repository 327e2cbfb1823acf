// Package editor dispatches pointer input onto a pixel grid according to
// the active tool. A Session is owned by one host view and driven from its
// event loop; it is not safe for concurrent use.
package editor

import (
	"fmt"
	"io"

	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/view"
	"github.com/sirupsen/logrus"
)

const DefaultCellSize = 10.0

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// ButtonMask is the set of buttons held during a move.
type ButtonMask uint8

const (
	MaskLeft ButtonMask = 1 << iota
	MaskMiddle
	MaskRight
)

func (m ButtonMask) Has(b Button) bool {
	return m&(1<<uint(b)) != 0
}

// Session is one editing session: the injected grid plus tool, color and view state.
type Session struct {
	Grid     *grid.Grid
	View     view.Transform
	CellSize float64
	Limits   view.Limits

	color grid.Color
	tool  Tool
	log   *logrus.Entry

	panning      bool
	lastX, lastY float64
	dirty        bool
}

type Option func(*Session)

func WithColor(c grid.Color) Option {
	return func(s *Session) { s.color = c }
}

func WithTool(t Tool) Option {
	return func(s *Session) { s.tool = t }
}

func WithCellSize(size float64) Option {
	return func(s *Session) { s.CellSize = size }
}

func WithLimits(l view.Limits) Option {
	return func(s *Session) { s.Limits = l }
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Session) { s.log = l }
}

func NewSession(g *grid.Grid, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, fmt.Errorf("editor: nil grid")
	}
	s := &Session{
		Grid:     g,
		View:     view.Identity(),
		CellSize: DefaultCellSize,
		Limits:   view.DefaultLimits,
		color:    grid.DefaultSample,
		tool:     ToolPencil,
		dirty:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		s.log = logrus.NewEntry(quiet)
	}
	if s.CellSize <= 0 {
		return nil, fmt.Errorf("editor: cell size must be positive, got %v", s.CellSize)
	}
	if s.Limits.Min <= 0 || s.Limits.Min > s.Limits.Max {
		return nil, fmt.Errorf("editor: invalid zoom limits [%v, %v]", s.Limits.Min, s.Limits.Max)
	}
	if !s.tool.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTool, s.tool)
	}
	c, err := grid.ParseColor(string(s.color))
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	s.color = c
	s.View.Zoom = s.Limits.Clamp(s.View.Zoom)
	return s, nil
}

func (s *Session) Tool() Tool        { return s.tool }
func (s *Session) Color() grid.Color { return s.color }
func (s *Session) Panning() bool     { return s.panning }

func (s *Session) SetTool(t Tool) {
	if !t.Valid() || t == s.tool {
		return
	}
	s.tool = t
	s.log.WithField("tool", t.String()).Debug("switched tool")
}

// SetColor validates and selects the active color.
func (s *Session) SetColor(raw string) error {
	c, err := grid.ParseColor(raw)
	if err != nil {
		return err
	}
	s.color = c
	return nil
}

// Changed reports whether the grid or view changed since the last call.
func (s *Session) Changed() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// MarkDirty forces the next Changed call to report true.
func (s *Session) MarkDirty() { s.dirty = true }

// CellAt maps a screen point to a grid cell; ok is false outside the grid.
func (s *Session) CellAt(sx, sy float64) (int, int, bool) {
	gx, gy := view.ScreenToGrid(sx, sy, s.View, s.CellSize)
	return gx, gy, s.Grid.InBounds(gx, gy)
}

// PointerDown applies the active tool at the pressed cell, or starts a pan
// gesture for the middle button.
func (s *Session) PointerDown(sx, sy float64, b Button) {
	switch b {
	case ButtonMiddle:
		s.panning = true
		s.lastX, s.lastY = sx, sy
		return
	case ButtonLeft:
	default:
		return
	}

	gx, gy, ok := s.CellAt(sx, sy)
	if !ok {
		return
	}

	switch s.tool {
	case ToolPencil:
		s.mark(s.Grid.Set(gx, gy, s.color))
	case ToolEraser:
		s.mark(s.Grid.Erase(gx, gy))
	case ToolEyedropper:
		s.Pick(gx, gy)
	case ToolFill:
		n := s.Grid.FloodFill(gx, gy, s.color)
		s.mark(n > 0)
		s.log.WithFields(logrus.Fields{"x": gx, "y": gy, "color": s.color, "cells": n}).Debug("flood fill")
	}
}

// Pick samples a cell into the active color and returns to the pencil.
func (s *Session) Pick(gx, gy int) {
	s.color = s.Grid.Sample(gx, gy)
	s.SetTool(ToolPencil)
}

// PointerMove pans while a pan gesture is active, otherwise keeps painting or
// erasing under the cursor while the primary button is held.
func (s *Session) PointerMove(sx, sy float64, buttons ButtonMask) {
	if s.panning {
		s.View.PanBy(sx-s.lastX, sy-s.lastY)
		s.lastX, s.lastY = sx, sy
		s.dirty = true
		return
	}
	if !buttons.Has(ButtonLeft) {
		return
	}
	gx, gy, ok := s.CellAt(sx, sy)
	if !ok {
		return
	}
	switch s.tool {
	case ToolPencil:
		s.mark(s.Grid.Set(gx, gy, s.color))
	case ToolEraser:
		s.mark(s.Grid.Erase(gx, gy))
	case ToolEyedropper, ToolFill:
	}
}

// PointerUp ends a pan gesture.
func (s *Session) PointerUp(b Button) {
	if b == ButtonMiddle {
		s.panning = false
	}
}

// Cancel drops any gesture in progress, e.g. when the pointer leaves the canvas.
func (s *Session) Cancel() {
	s.panning = false
}

// Wheel zooms by a wheel delta.
func (s *Session) Wheel(deltaY float64) {
	before := s.View.Zoom
	s.View.Wheel(deltaY, s.Limits)
	s.mark(before != s.View.Zoom)
}

// ZoomAt zooms around a screen point.
func (s *Session) ZoomAt(factor, sx, sy float64) {
	before := s.View
	s.View.ZoomAt(factor, sx, sy, s.Limits)
	s.mark(before != s.View)
}

func (s *Session) mark(changed bool) {
	if changed {
		s.dirty = true
	}
}

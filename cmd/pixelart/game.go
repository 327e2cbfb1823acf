package main

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pixelart/config"
	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/export"
	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/macro"
	"github.com/milk9111/pixelart/palettes"
	"github.com/milk9111/pixelart/render"
	"github.com/sirupsen/logrus"
)

// wheelNotch converts one ebiten wheel step into the pixel delta a browser
// would report for the same notch.
const wheelNotch = 100

// zoomStep is the Ctrl+wheel zoom factor per notch.
const zoomStep = 1.25

const canvasMargin = 8

var background = color.RGBA{48, 48, 56, 255}

var toolKeys = map[ebiten.Key]editor.Tool{
	ebiten.KeyP: editor.ToolPencil,
	ebiten.KeyE: editor.ToolEraser,
	ebiten.KeyI: editor.ToolEyedropper,
	ebiten.KeyF: editor.ToolFill,
}

var swatchKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// PixelGame is the ebiten host for one editing session.
type PixelGame struct {
	cfg       config.Config
	cfgPath   string
	flags     options
	macroPath string

	session *editor.Session
	palette palettes.Palette

	ui         *ebitenui.UI
	toolBar    *ToolBar
	paletteBar *PaletteBar
	status     *StatusLine
	lastTool   editor.Tool
	lastColor  grid.Color

	raster    *image.RGBA
	canvas    *ebiten.Image
	gridPixel *ebiten.Image

	screenW, screenH int

	watcher *config.Watcher
	clip    colorClipboard
	log     *logrus.Entry
	now     func() time.Time
}

func NewPixelGame(cfg config.Config, cfgPath string, o options) (*PixelGame, error) {
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	s.View.PanX, s.View.PanY = canvasMargin, toolbarHeight+canvasMargin
	g := &PixelGame{
		cfg:       cfg,
		cfgPath:   cfgPath,
		flags:     o,
		macroPath: o.macroPath,
		session:   s,
		log:       log.WithField("component", "host"),
		now:       time.Now,
	}
	if err := g.loadPalette(cfg.Palette); err != nil {
		return nil, err
	}

	ui, toolBar, paletteBar, status, err := BuildPixelUI(g.selectTool, g.pickColor, s.Tool())
	if err != nil {
		return nil, err
	}
	g.ui, g.toolBar, g.paletteBar, g.status = ui, toolBar, paletteBar, status
	g.paletteBar.SetPalette(g.palette)
	g.syncUI()

	g.raster = render.Rasterize(s.Grid)
	g.canvas = ebiten.NewImage(s.Grid.Width(), s.Grid.Height())
	g.clip = newSystemClipboard()

	if g.macroPath != "" {
		g.runMacro()
	}
	g.startWatcher()
	return g, nil
}

func (g *PixelGame) startWatcher() {
	dirs := []string{filepath.Dir(g.cfgPath)}
	if g.cfg.MacrosDir != "" {
		dirs = append(dirs, g.cfg.MacrosDir)
	}
	if g.macroPath != "" {
		dirs = append(dirs, filepath.Dir(g.macroPath))
	}
	seen := map[string]bool{}
	var unique []string
	for _, d := range dirs {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	w, err := config.NewWatcher(unique...)
	if err != nil {
		g.log.WithError(err).Warn("hot reload disabled")
		return
	}
	g.watcher = w
}

func (g *PixelGame) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *PixelGame) loadPalette(name string) error {
	p, err := palettes.Load(name)
	if err != nil {
		return err
	}
	g.palette = p
	return nil
}

func (g *PixelGame) selectTool(t editor.Tool) {
	g.session.SetTool(t)
}

func (g *PixelGame) pickColor(c grid.Color) {
	if err := g.session.SetColor(string(c)); err != nil {
		g.log.WithError(err).Warn("pick color")
	}
}

// selectSwatch picks the i-th palette color; out-of-range is ignored.
func (g *PixelGame) selectSwatch(i int) {
	if c, ok := g.palette.At(i); ok {
		g.pickColor(c)
	}
}

func (g *PixelGame) syncUI() {
	tool, col := g.session.Tool(), g.session.Color()
	if tool != g.lastTool && g.toolBar != nil {
		g.toolBar.SetTool(tool)
	}
	if tool != g.lastTool || col != g.lastColor {
		g.status.Set(tool, col)
	}
	g.lastTool, g.lastColor = tool, col
}

func (g *PixelGame) copyColor() {
	if g.clip == nil {
		return
	}
	g.clip.WriteText(string(g.session.Color()))
	g.log.WithField("color", g.session.Color()).Info("copied color")
}

func (g *PixelGame) pasteColor() {
	if g.clip == nil {
		return
	}
	raw := strings.TrimSpace(g.clip.ReadText())
	if err := g.session.SetColor(raw); err != nil {
		g.log.WithError(err).Warn("paste color")
		return
	}
	g.log.WithField("color", g.session.Color()).Info("pasted color")
}

func (g *PixelGame) exportPNG() string {
	path := exportName(g.cfg.ExportDir, g.now())
	if err := export.SavePNG(path, g.session.Grid, export.DefaultOptions()); err != nil {
		g.log.WithError(err).Error("export failed")
		return ""
	}
	g.log.WithField("path", path).Info("exported")
	return path
}

func (g *PixelGame) clearCanvas() {
	g.session.Grid.Clear()
	g.session.MarkDirty()
	g.log.Info("canvas cleared")
}

func (g *PixelGame) runMacro() {
	if g.macroPath == "" {
		g.log.Info("no macro selected")
		return
	}
	if err := macro.RunFile(g.macroPath, g.session); err != nil {
		g.log.WithError(err).WithField("macro", g.macroPath).Error("macro failed")
		return
	}
	g.log.WithField("macro", g.macroPath).Info("macro applied")
}

// handleFileEvent reacts to a watched file change: the config file is
// reloaded under the same env and flag overrides as at startup, and an edited
// macro becomes the one R runs.
func (g *PixelGame) handleFileEvent(path string) {
	if config.IsMacroFile(path) {
		g.macroPath = path
		g.log.WithField("macro", path).Info("macro changed")
		return
	}
	if filepath.Clean(path) != filepath.Clean(g.cfgPath) {
		return
	}
	cfg, err := config.Reload(g.cfgPath)
	if err == nil {
		err = config.ApplyEnv(&cfg)
	}
	if err != nil {
		g.log.WithError(err).Warn("config reload rejected")
		return
	}
	g.flags.applyTo(&cfg)
	g.applyConfig(cfg)
}

// applyConfig swaps in a reloaded config. The grid keeps its size until the
// next start.
func (g *PixelGame) applyConfig(cfg config.Config) {
	if cfg.Grid != g.cfg.Grid {
		g.log.WithFields(logrus.Fields{"width": cfg.Grid.Width, "height": cfg.Grid.Height}).
			Warn("grid size changes apply on restart")
	}
	if cfg.Palette != g.palette.Name {
		if err := g.loadPalette(cfg.Palette); err != nil {
			g.log.WithError(err).Warn("palette reload")
		} else {
			g.paletteBar.SetPalette(g.palette)
		}
	}
	g.session.CellSize = cfg.CellSize
	g.session.Limits = cfg.Limits()
	g.session.View.Zoom = g.session.Limits.Clamp(g.session.View.Zoom)
	g.session.MarkDirty()
	log.SetLevel(cfg.Level())
	g.cfg = cfg
	g.log.WithField("config", g.cfgPath).Info("config reloaded")
}

func (g *PixelGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.handleFileEvent(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher")
		default:
			return
		}
	}
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *PixelGame) updateHotkeys() {
	ctrl := ctrlPressed()
	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.exportPNG()
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			g.copyColor()
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			g.pasteColor()
		case inpututil.IsKeyJustPressed(ebiten.KeyN):
			g.clearCanvas()
		}
		return
	}

	for key, tool := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.session.SetTool(tool)
		}
	}
	for i, key := range swatchKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectSwatch(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.runMacro()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.session.Cancel()
	}
}

// zone is the part of the window a cursor position falls in.
type zone int

const (
	zoneOutside zone = iota
	zoneChrome
	zoneCanvas
)

// pointerZone classifies (cx, cy) in a w x h window. The toolbar strip and
// the status bar are chrome; a zero size means Layout has not run yet.
func pointerZone(cx, cy, w, h int) zone {
	if cx < 0 || cy < 0 || (w > 0 && cx >= w) || (h > 0 && cy >= h) {
		return zoneOutside
	}
	if cy < toolbarHeight || (h > 0 && cy >= h-statusBarHeight) {
		return zoneChrome
	}
	return zoneCanvas
}

// pointerInput is one tick of mouse state.
type pointerInput struct {
	x, y     int
	wheelY   float64
	ctrl     bool
	pressed  []editor.Button
	released []editor.Button
	held     editor.ButtonMask
}

var mouseButtons = []struct {
	key  ebiten.MouseButton
	b    editor.Button
	mask editor.ButtonMask
}{
	{ebiten.MouseButtonMiddle, editor.ButtonMiddle, editor.MaskMiddle},
	{ebiten.MouseButtonLeft, editor.ButtonLeft, editor.MaskLeft},
}

func (g *PixelGame) updatePointer() {
	var in pointerInput
	in.x, in.y = ebiten.CursorPosition()
	_, in.wheelY = ebiten.Wheel()
	in.ctrl = ctrlPressed()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(mb.key) {
			in.released = append(in.released, mb.b)
		}
		if inpututil.IsMouseButtonJustPressed(mb.key) {
			in.pressed = append(in.pressed, mb.b)
		}
		if ebiten.IsMouseButtonPressed(mb.key) {
			in.held |= mb.mask
		}
	}
	g.handlePointer(in)
}

// handlePointer routes one tick of mouse input to the session. Leaving the
// window drops any gesture; over chrome only an active pan keeps tracking.
func (g *PixelGame) handlePointer(in pointerInput) {
	for _, b := range in.released {
		g.session.PointerUp(b)
	}
	switch pointerZone(in.x, in.y, g.screenW, g.screenH) {
	case zoneOutside:
		g.session.Cancel()
		return
	case zoneChrome:
		if !g.session.Panning() {
			return
		}
	}

	sx, sy := float64(in.x), float64(in.y)
	if in.wheelY != 0 {
		g.wheel(in.wheelY, sx, sy, in.ctrl)
	}
	if len(in.pressed) > 0 {
		g.session.PointerDown(sx, sy, in.pressed[0])
		return
	}
	g.session.PointerMove(sx, sy, in.held)
}

// wheel zooms by ebiten wheel notches: plain scrolling steps the zoom
// linearly, Ctrl+scroll scales it around the cursor.
func (g *PixelGame) wheel(notches, sx, sy float64, ctrl bool) {
	if ctrl {
		g.session.ZoomAt(math.Pow(zoomStep, notches), sx, sy)
		return
	}
	g.session.Wheel(-notches * wheelNotch)
}

func (g *PixelGame) Update() error {
	g.drainWatcher()
	g.updateHotkeys()
	if g.ui != nil {
		g.ui.Update()
	}
	g.updatePointer()
	g.syncUI()
	return nil
}

func (g *PixelGame) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.session.Changed() {
		render.RasterizeInto(g.raster, g.session.Grid)
		g.canvas.WritePixels(g.raster.Pix)
	}

	scale := g.session.CellSize * g.session.View.Zoom
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(g.session.View.PanX, g.session.View.PanY)
	screen.DrawImage(g.canvas, op)
	g.drawHover(screen)

	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

// drawHover tints the cell under the cursor.
func (g *PixelGame) drawHover(screen *ebiten.Image) {
	if g.gridPixel == nil {
		g.gridPixel = ebiten.NewImage(1, 1)
		g.gridPixel.Fill(color.White)
	}
	cx, cy := ebiten.CursorPosition()
	if pointerZone(cx, cy, g.screenW, g.screenH) != zoneCanvas {
		return
	}
	gx, gy, ok := g.session.CellAt(float64(cx), float64(cy))
	if !ok {
		return
	}
	x0, y0, x1, y1 := render.CellRect(gx, gy, g.session.View, g.session.CellSize)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(x1-x0, y1-y0)
	op.GeoM.Translate(x0, y0)
	op.ColorScale.ScaleAlpha(0.25)
	screen.DrawImage(g.gridPixel, op)
}

func (g *PixelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelart/config"
	"github.com/milk9111/pixelart/editor"
	"github.com/milk9111/pixelart/export"
	"github.com/milk9111/pixelart/grid"
	"github.com/milk9111/pixelart/macro"
	"github.com/milk9111/pixelart/palettes"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

type options struct {
	configPath string
	palette    string
	macroPath  string
	exportPath string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("pixelart", flag.ContinueOnError)
	var o options
	fs.StringVar(&o.configPath, "config", "", "YAML config file (default $PIXELART_CONFIG or pixelart.yaml)")
	fs.StringVar(&o.palette, "palette", "", "Palette name: "+fmt.Sprint(palettes.Names()))
	fs.StringVar(&o.macroPath, "macro", "", "Tengo macro to run at startup and on R")
	fs.StringVar(&o.exportPath, "export", "", "Render to this PNG and exit without opening a window")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func loadConfig(o options) (config.Config, string, error) {
	config.LoadEnv()
	path := o.configPath
	if path == "" {
		path = config.PathFromEnv(config.DefaultPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, path, err
	}
	o.applyTo(&cfg)
	return cfg, path, nil
}

// applyTo layers command-line overrides over a loaded config.
func (o options) applyTo(cfg *config.Config) {
	if o.palette != "" {
		cfg.Palette = o.palette
	}
}

func newSession(cfg config.Config) (*editor.Session, error) {
	g, err := grid.New(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return nil, err
	}
	return editor.NewSession(g,
		editor.WithColor(cfg.Color()),
		editor.WithTool(cfg.Tool()),
		editor.WithCellSize(cfg.CellSize),
		editor.WithLimits(cfg.Limits()),
		editor.WithLogger(log.WithField("component", "editor")),
	)
}

// exportName is the default file name for a Ctrl+S snapshot.
func exportName(dir string, now time.Time) string {
	return filepath.Join(dir, "pixelart-"+now.Format("20060102-150405")+".png")
}

// runHeadless applies the macro, if any, and writes one PNG.
func runHeadless(cfg config.Config, o options) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	if o.macroPath != "" {
		if err := macro.RunFile(o.macroPath, s); err != nil {
			return err
		}
	}
	if err := export.SavePNG(o.exportPath, s.Grid, export.DefaultOptions()); err != nil {
		return err
	}
	log.WithField("path", o.exportPath).Info("exported")
	return nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, cfgPath, err := loadConfig(o)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())

	if o.exportPath != "" {
		if err := runHeadless(cfg, o); err != nil {
			log.Fatal(err)
		}
		return
	}

	log.WithFields(logrus.Fields{
		"config":  cfgPath,
		"grid":    fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"palette": cfg.Palette,
	}).Info("pixelart starting")

	game, err := NewPixelGame(cfg, cfgPath, o)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("Pixel Art")
	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

package palettes

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/pixelart/grid"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var PalettesFS embed.FS

var ErrUnknownPalette = errors.New("unknown palette")

type Palette struct {
	Name   string       `yaml:"name"`
	Colors []grid.Color `yaml:"colors"`
}

// At returns the i-th swatch, or false past the end.
func (p Palette) At(i int) (grid.Color, bool) {
	if i < 0 || i >= len(p.Colors) {
		return grid.None, false
	}
	return p.Colors[i], true
}

func Load(name string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "default"
	}
	data, err := fs.ReadFile(PalettesFS, name+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return Palette{}, fmt.Errorf("palettes: %w: %q", ErrUnknownPalette, name)
	}
	if err != nil {
		return Palette{}, fmt.Errorf("palettes: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a palette and normalizes its colors.
func Parse(data []byte) (Palette, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("palettes: unmarshal: %w", err)
	}
	if len(p.Colors) == 0 {
		return Palette{}, fmt.Errorf("palettes: %q has no colors", p.Name)
	}
	for i, c := range p.Colors {
		parsed, err := grid.ParseColor(string(c))
		if err != nil {
			return Palette{}, fmt.Errorf("palettes: %q color %d: %w", p.Name, i, err)
		}
		p.Colors[i] = parsed
	}
	return p, nil
}

func Names() []string {
	entries, err := fs.ReadDir(PalettesFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

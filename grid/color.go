package grid

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Color is a cell color in canonical "#RRGGBB" form. The zero value is None.
type Color string

// None marks an unpainted (transparent) cell.
const None Color = ""

// DefaultSample is what Sample reports for unpainted cells.
const DefaultSample Color = "#000000"

var ErrInvalidColor = errors.New("grid: invalid color")

// ParseColor accepts #rgb or #rrggbb in any case and returns the canonical form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return None, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return None, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return None, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return Color("#" + strings.ToUpper(hex)), nil
}

// RGBA converts the color for renderers. None and malformed values are transparent.
func (c Color) RGBA() color.RGBA {
	if len(c) != 7 || c[0] != '#' {
		return color.RGBA{}
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := hexValue(c[1+i*2])
		lo, ok2 := hexValue(c[2+i*2])
		if !ok1 || !ok2 {
			return color.RGBA{}
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}
}

// FromRGBA builds a canonical Color from an opaque RGBA value.
func FromRGBA(c color.RGBA) Color {
	return Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func (c Color) String() string {
	if c == None {
		return "none"
	}
	return string(c)
}

func isHexDigit(b byte) bool {
	_, ok := hexValue(b)
	return ok
}

func hexValue(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

package palettes

import (
	"testing"

	"github.com/milk9111/pixelart/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"default", "grayscale", "pico8"}, Names())
}

func TestLoadEmbedded(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.NotEmpty(t, p.Colors)
			for _, c := range p.Colors {
				_, err := grid.ParseColor(string(c))
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadBlankMeansDefault(t *testing.T) {
	p, err := Load("  ")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Name)
	c, ok := p.At(0)
	assert.True(t, ok)
	assert.Equal(t, grid.Color("#000000"), c)
	_, ok = p.At(len(p.Colors))
	assert.False(t, ok)
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("vaporwave")
	require.ErrorIs(t, err, ErrUnknownPalette)
}

func TestParseNormalizesAndRejects(t *testing.T) {
	p, err := Parse([]byte("name: tiny\ncolors: [\"#abc\", \"#00ff00\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, []grid.Color{"#AABBCC", "#00FF00"}, p.Colors)

	_, err = Parse([]byte("name: empty\ncolors: []\n"))
	require.Error(t, err)

	_, err = Parse([]byte("name: bad\ncolors: [\"blue\"]\n"))
	require.ErrorIs(t, err, grid.ErrInvalidColor)
}

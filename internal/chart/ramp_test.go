package chart

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColors = []color.Color{
	color.RGBA{R: 1, A: 255},
	color.RGBA{R: 2, A: 255},
	color.RGBA{R: 3, A: 255},
}

func TestRampBinning(t *testing.T) {
	r, err := NewRamp(0, 9, testColors)
	require.NoError(t, err)

	assert.Equal(t, testColors[0], r.At(0))
	assert.Equal(t, testColors[0], r.At(2.9))
	assert.Equal(t, testColors[1], r.At(3))
	assert.Equal(t, testColors[2], r.At(8.9))
	// Max clamps into the last bin.
	assert.Equal(t, testColors[2], r.At(9))
}

func TestRampClamping(t *testing.T) {
	r, err := NewRamp(0, 1, testColors)
	require.NoError(t, err)

	assert.Equal(t, testColors[0], r.At(-5))
	assert.Equal(t, testColors[2], r.At(5))
}

func TestRampDegenerateRange(t *testing.T) {
	r, err := NewRamp(4, 4, testColors)
	require.NoError(t, err)
	assert.Equal(t, testColors[2], r.At(4))
}

func TestRampFromValues(t *testing.T) {
	r, err := NewRampFromValues([]float64{5, 2, 8}, testColors)
	require.NoError(t, err)
	assert.Equal(t, 2.0, r.Min)
	assert.Equal(t, 8.0, r.Max)
}

func TestRampErrors(t *testing.T) {
	_, err := NewRamp(0, 1, nil)
	assert.Error(t, err)

	_, err = NewRamp(2, 1, testColors)
	assert.Error(t, err)

	_, err = NewRampFromValues(nil, testColors)
	assert.Error(t, err)
}

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	assert.Len(t, theme.Ramp, 5)
	assert.NotNil(t, theme.Highlight)

	resized := theme.WithSize(20, 16)
	assert.Greater(t, float64(resized.Width), float64(theme.Width))
}

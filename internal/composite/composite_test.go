package composite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forest-guardian/sentinel-vision-poc/internal/enhance"
)

func fillChannel(rows, cols int, value uint8) enhance.Grid {
	grid := make(enhance.Grid, rows)
	for i := range grid {
		grid[i] = make([]uint8, cols)
		for j := range grid[i] {
			grid[i][j] = value
		}
	}
	return grid
}

func TestStackInterleaves(t *testing.T) {
	red := fillChannel(100, 100, 10)
	green := fillChannel(100, 100, 20)
	blue := fillChannel(100, 100, 30)

	img, err := Stack(red, green, blue)
	require.NoError(t, err)
	require.Equal(t, 100, img.Rows)
	require.Equal(t, 100, img.Cols)
	require.Len(t, img.Pix, 100*100*3)

	r, g, b := img.At(42, 17)
	require.Equal(t, uint8(10), r)
	require.Equal(t, uint8(20), g)
	require.Equal(t, uint8(30), b)
}

func TestStackShapeMismatch(t *testing.T) {
	tests := []struct {
		name             string
		red, green, blue enhance.Grid
	}{
		{"green differs", fillChannel(10, 10, 0), fillChannel(10, 9, 0), fillChannel(10, 10, 0)},
		{"blue differs", fillChannel(10, 10, 0), fillChannel(10, 10, 0), fillChannel(9, 10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Stack(tt.red, tt.green, tt.blue)
			require.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestVignetteInvalidStrength(t *testing.T) {
	img, err := Stack(fillChannel(4, 4, 200), fillChannel(4, 4, 200), fillChannel(4, 4, 200))
	require.NoError(t, err)

	for _, strength := range []float64{-0.1, 1.1, 2} {
		require.ErrorIs(t, Vignette(img, strength), ErrInvalidStrength)
	}
}

func TestVignetteZeroStrengthIsIdentity(t *testing.T) {
	img, err := Stack(fillChannel(20, 30, 123), fillChannel(20, 30, 45), fillChannel(20, 30, 200))
	require.NoError(t, err)

	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	require.NoError(t, Vignette(img, 0))
	require.Equal(t, before, img.Pix)
}

func TestVignetteFullStrengthZeroesFarCorner(t *testing.T) {
	img, err := Stack(fillChannel(50, 50, 255), fillChannel(50, 50, 255), fillChannel(50, 50, 255))
	require.NoError(t, err)

	require.NoError(t, Vignette(img, 1))

	r, g, b := img.At(0, 0)
	require.Equal(t, uint8(0), r)
	require.Equal(t, uint8(0), g)
	require.Equal(t, uint8(0), b)
}

func TestVignetteDarkensTowardEdges(t *testing.T) {
	img, err := Stack(fillChannel(41, 41, 200), fillChannel(41, 41, 200), fillChannel(41, 41, 200))
	require.NoError(t, err)

	require.NoError(t, Vignette(img, 0.5))

	// Walk from center to the left edge along the center row; intensity
	// must never increase.
	prev := uint8(255)
	for x := 20; x >= 0; x-- {
		r, _, _ := img.At(20, x)
		require.LessOrEqual(t, r, prev, "column %d brighter than its inner neighbor", x)
		prev = r
	}

	center, _, _ := img.At(20, 20)
	corner, _, _ := img.At(0, 0)
	require.Greater(t, center, corner)
}

package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forest-guardian/sentinel-vision-poc/internal/raster"
)

func gridFrom(values [][]float64) raster.Grid {
	return raster.Grid(values)
}

func TestComputeShapeMismatch(t *testing.T) {
	_, err := Compute(raster.NewGrid(3, 4), raster.NewGrid(4, 3))
	require.ErrorIs(t, err, raster.ErrShapeMismatch)
}

func TestComputeEqualBandsAreZero(t *testing.T) {
	band := gridFrom([][]float64{{10, 20}, {30, 40}})

	out, err := Compute(band, band)
	require.NoError(t, err)
	for y := range out {
		for x := range out[y] {
			require.Zero(t, out[y][x])
		}
	}
}

func TestComputeZeroDenominator(t *testing.T) {
	bandA := gridFrom([][]float64{{0, 10}, {5, -5}})
	bandB := gridFrom([][]float64{{0, 10}, {-5, 5}})

	out, err := Compute(bandA, bandB)
	require.NoError(t, err)

	require.True(t, math.IsNaN(out[0][0]), "0/0 should be NaN")
	require.Zero(t, out[0][1])
	require.True(t, math.IsInf(out[1][0], 1), "10/0 should be +Inf")
	require.True(t, math.IsInf(out[1][1], -1), "-10/0 should be -Inf")

	// The three non-finite pixels must not leak into the statistics.
	stats, err := Summarize(out)
	require.NoError(t, err)
	require.Zero(t, stats.Min)
	require.Zero(t, stats.Max)
	require.Zero(t, stats.Mean)
	require.Zero(t, stats.StdDev)
}

func TestSummarizeEmptyInput(t *testing.T) {
	grid := gridFrom([][]float64{
		{math.NaN(), math.Inf(1)},
		{math.Inf(-1), math.NaN()},
	})
	_, err := Summarize(grid)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestComputeAndSummarizeEndToEnd(t *testing.T) {
	bandA := gridFrom([][]float64{{10, 20}, {30, 40}})
	bandB := gridFrom([][]float64{{5, 5}, {5, 5}})

	out, err := Compute(bandA, bandB)
	require.NoError(t, err)

	require.InDelta(t, 0.333, out[0][0], 0.001)
	require.InDelta(t, 0.600, out[0][1], 0.001)
	require.InDelta(t, 0.714, out[1][0], 0.001)
	require.InDelta(t, 0.778, out[1][1], 0.001)

	stats, err := Summarize(out)
	require.NoError(t, err)
	require.InDelta(t, 0.3333, stats.Min, 0.0001)
	require.InDelta(t, 0.7778, stats.Max, 0.0001)
	require.InDelta(t, 0.6063, stats.Mean, 0.0001)
	require.InDelta(t, 0.1700, stats.StdDev, 0.0001)
}

package enhance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/forest-guardian/sentinel-vision-poc/internal/raster"
)

var ErrInvalidPercentile = errors.New("enhance: percentile must be in [0, 50)")

// DefaultPercentile clips 2% of samples at each end of the histogram, the
// usual choice for making reflectance bands viewable.
const DefaultPercentile = 2.0

// Grid is an 8-bit display channel produced by Stretch.
type Grid [][]uint8

func (g Grid) Shape() (rows, cols int) {
	rows = len(g)
	if rows > 0 {
		cols = len(g[0])
	}
	return rows, cols
}

// Stretch converts raw reflectance samples to the [0, 255] display range
// using a percentile stretch: values are clipped to the percentile-th and
// (100-percentile)-th percentiles and what remains is rescaled linearly.
// Each band is stretched independently, so the color balance of a composite
// depends on each channel's own histogram.
func Stretch(grid raster.Grid, percentile float64) (Grid, error) {
	if percentile < 0 || percentile >= 50 || math.IsNaN(percentile) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPercentile, percentile)
	}

	rows, cols := grid.Shape()
	lowCut, highCut := percentileCuts(grid, percentile)

	out := make(Grid, rows)
	buf := make([]uint8, rows*cols)
	for i := range out {
		out[i] = buf[i*cols : (i+1)*cols]
	}

	if highCut == lowCut {
		// Constant band: nothing to stretch, emit uniform mid-gray.
		for i := range buf {
			buf[i] = 128
		}
		return out, nil
	}

	scale := 255 / (highCut - lowCut)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := grid[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lowCut {
				v = lowCut
			}
			if v > highCut {
				v = highCut
			}
			s := (v - lowCut) * scale
			if s > 255 {
				s = 255
			}
			out[y][x] = uint8(s)
		}
	}
	return out, nil
}

// percentileCuts sorts the finite samples and picks the cut values at the
// requested percentile from each end.
func percentileCuts(grid raster.Grid, percentile float64) (low, high float64) {
	vals := []float64{}
	for _, row := range grid {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}

	sort.Float64s(vals)

	at := func(p float64) float64 {
		i := int(p / 100 * float64(len(vals)))
		if i >= len(vals) {
			i = len(vals) - 1
		}
		return vals[i]
	}
	return at(percentile), at(100 - percentile)
}

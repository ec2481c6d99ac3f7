package index

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/forest-guardian/sentinel-vision-poc/internal/raster"
)

var ErrEmptyInput = errors.New("index: no finite values to summarize")

// Statistics summarizes the finite values of an index grid.
type Statistics struct {
	Min    float64 `json:"min" csv:"min"`
	Max    float64 `json:"max" csv:"max"`
	Mean   float64 `json:"mean" csv:"mean"`
	StdDev float64 `json:"std_dev" csv:"std_dev"`
}

// Compute evaluates the normalized difference (a-b)/(a+b) per pixel. The
// same formula produces every index in the family (NDVI, NDRE, NDMI, ...);
// which bands go in decides which index comes out, and that naming lives
// with the caller. Pixels where a+b is zero come out NaN or Inf, which
// Summarize later ignores.
func Compute(bandA, bandB raster.Grid) (raster.Grid, error) {
	if !bandA.SameShape(bandB) {
		ar, ac := bandA.Shape()
		br, bc := bandB.Shape()
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", raster.ErrShapeMismatch, ar, ac, br, bc)
	}

	rows, cols := bandA.Shape()
	out := raster.NewGrid(rows, cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a, b := bandA[y][x], bandB[y][x]
			out[y][x] = (a - b) / (a + b)
		}
	}
	return out, nil
}

// Summarize computes min, max, mean and population standard deviation over
// the finite values of grid. NaN and Inf pixels are skipped entirely; if
// nothing finite remains the grid has no summary.
func Summarize(grid raster.Grid) (Statistics, error) {
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
		return Statistics{}, ErrEmptyInput
	}

	stats := Statistics{Min: vals[0], Max: vals[0]}
	for _, v := range vals {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = stat.Mean(vals, nil)
	stats.StdDev = math.Sqrt(stat.MomentAbout(2, vals, stats.Mean, nil))
	return stats, nil
}

package raster

import "errors"

var ErrShapeMismatch = errors.New("raster: grids have different shapes")

// Grid is one decoded band plane, row-major, rows of equal length.
type Grid [][]float64

// NewGrid allocates a rows×cols grid backed by a single flat buffer.
func NewGrid(rows, cols int) Grid {
	data := make([]float64, rows*cols)
	grid := make(Grid, rows)
	for i := range grid {
		grid[i] = data[i*cols : (i+1)*cols]
	}
	return grid
}

// GridFromBuffer slices a flat row-major buffer into rows without copying.
func GridFromBuffer(data []float64, rows, cols int) Grid {
	grid := make(Grid, rows)
	for i := range grid {
		grid[i] = data[i*cols : (i+1)*cols]
	}
	return grid
}

func (g Grid) Shape() (rows, cols int) {
	rows = len(g)
	if rows > 0 {
		cols = len(g[0])
	}
	return rows, cols
}

func (g Grid) SameShape(other Grid) bool {
	rows, cols := g.Shape()
	otherRows, otherCols := other.Shape()
	return rows == otherRows && cols == otherCols
}

package raster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGridShape(t *testing.T) {
	grid := NewGrid(3, 5)
	rows, cols := grid.Shape()
	require.Equal(t, 3, rows)
	require.Equal(t, 5, cols)
}

func TestGridFromBufferSharesBacking(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6}
	grid := GridFromBuffer(buf, 2, 3)

	require.Equal(t, 4.0, grid[1][0])
	buf[3] = 40
	require.Equal(t, 40.0, grid[1][0])
}

func TestSameShape(t *testing.T) {
	require.True(t, NewGrid(2, 3).SameShape(NewGrid(2, 3)))
	require.False(t, NewGrid(2, 3).SameShape(NewGrid(3, 2)))
	require.False(t, NewGrid(2, 3).SameShape(NewGrid(2, 4)))
}

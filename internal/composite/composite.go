package composite

import (
	"errors"
	"fmt"

	"github.com/forest-guardian/sentinel-vision-poc/internal/enhance"
)

var ErrShapeMismatch = errors.New("composite: channel shapes differ")

// Image is an interleaved RGB buffer, 3 bytes per pixel, row-major.
type Image struct {
	Rows int
	Cols int
	Pix  []uint8
}

// At returns the (r, g, b) triple at row y, column x.
func (img *Image) At(y, x int) (r, g, b uint8) {
	i := (y*img.Cols + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Stack interleaves three display channels into one RGB image. The channels
// must share the same pixel grid; no resampling or alignment correction is
// done here.
func Stack(red, green, blue enhance.Grid) (*Image, error) {
	rows, cols := red.Shape()
	if gr, gc := green.Shape(); gr != rows || gc != cols {
		return nil, fmt.Errorf("%w: red %dx%d, green %dx%d", ErrShapeMismatch, rows, cols, gr, gc)
	}
	if br, bc := blue.Shape(); br != rows || bc != cols {
		return nil, fmt.Errorf("%w: red %dx%d, blue %dx%d", ErrShapeMismatch, rows, cols, br, bc)
	}

	img := &Image{
		Rows: rows,
		Cols: cols,
		Pix:  make([]uint8, rows*cols*3),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := (y*cols + x) * 3
			img.Pix[i] = red[y][x]
			img.Pix[i+1] = green[y][x]
			img.Pix[i+2] = blue[y][x]
		}
	}
	return img, nil
}

package composite

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidStrength = errors.New("composite: vignette strength must be in [0, 1]")

// Vignette darkens the image radially, in place: each pixel is scaled by
// 1 - d*strength where d is its distance from the image center normalized by
// the center-to-corner distance. Strength 0 leaves the image untouched;
// strength 1 drives the farthest corners to black.
func Vignette(img *Image, strength float64) error {
	if strength < 0 || strength > 1 || math.IsNaN(strength) {
		return fmt.Errorf("%w: got %v", ErrInvalidStrength, strength)
	}
	if strength == 0 {
		return nil
	}

	centerY := float64(img.Rows) / 2
	centerX := float64(img.Cols) / 2
	maxDist := math.Hypot(centerY, centerX)

	for y := 0; y < img.Rows; y++ {
		dy := float64(y) - centerY
		for x := 0; x < img.Cols; x++ {
			dx := float64(x) - centerX
			factor := 1 - math.Hypot(dy, dx)/maxDist*strength
			if factor < 0 {
				factor = 0
			}
			i := (y*img.Cols + x) * 3
			img.Pix[i] = uint8(float64(img.Pix[i]) * factor)
			img.Pix[i+1] = uint8(float64(img.Pix[i+1]) * factor)
			img.Pix[i+2] = uint8(float64(img.Pix[i+2]) * factor)
		}
	}
	return nil
}

package output

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/forest-guardian/sentinel-vision-poc/internal/pipeline"
)

// CreateIndexImage renders a normalized-difference grid as a PNG with a
// red-to-green ramp over [-1, 1] and the index name drawn top-left. Pixels
// with no defined value (zero-denominator pixels) come out black.
func CreateIndexImage(result pipeline.IndexResult, outputPath string) error {
	rows, cols := result.Grid.Shape()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("index %s has an empty grid", result.Name)
	}

	dc := gg.NewContext(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := result.Grid[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				dc.SetRGB(0, 0, 0)
			} else {
				dc.SetRGB(rampColor(v))
			}
			dc.SetPixel(x, y)
		}
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawString(strings.ToUpper(result.Name), 10, 20)

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save index image: %w", err)
	}

	fmt.Printf("Index image saved to: %s\n", outputPath)
	return nil
}

// rampColor maps [-1, 1] to red → yellow → green, the usual vegetation
// index palette.
func rampColor(v float64) (r, g, b float64) {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	t := (v + 1) / 2
	if t < 0.5 {
		return 1, t * 2, 0
	}
	return 2 - t*2, 1, 0
}

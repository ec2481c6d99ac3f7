package output

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/forest-guardian/sentinel-vision-poc/internal/composite"
)

// CreateCompositeImage writes the RGB composite to outputPath. The
// extension picks the encoding: .png, or .jpeg/.jpg at full quality.
func CreateCompositeImage(img *composite.Image, outputPath string) error {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Cols, img.Rows))
	for y := 0; y < img.Rows; y++ {
		for x := 0; x < img.Cols; x++ {
			r, g, b := img.At(y, x)
			rgba.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".jpeg", ".jpg":
		err = jpeg.Encode(file, rgba, &jpeg.Options{Quality: 100})
	default:
		err = png.Encode(file, rgba)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	fmt.Printf("Composite image saved to: %s\n", outputPath)
	return nil
}

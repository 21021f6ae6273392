package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageWriter collects pixel colors into an RGBA image.
// Distinct pixels may be written concurrently.
type ImageWriter struct {
	name string
	img  *image.RGBA
}

// NewImageWriter creates a black nX by nY image
func NewImageWriter(name string, nX, nY int) *ImageWriter {
	return &ImageWriter{name: name, img: image.NewRGBA(image.Rect(0, 0, nX, nY))}
}

// Name returns the image name
func (w *ImageWriter) Name() string { return w.name }

// Width returns the number of pixel columns
func (w *ImageWriter) Width() int { return w.img.Bounds().Dx() }

// Height returns the number of pixel rows
func (w *ImageWriter) Height() int { return w.img.Bounds().Dy() }

// WritePixel sets pixel (x, y), clamping each channel to 0..255
func (w *ImageWriter) WritePixel(x, y int, c core.Color) {
	w.img.SetRGBA(x, y, c.RGBA())
}

// Image returns the underlying image
func (w *ImageWriter) Image() *image.RGBA { return w.img }

// PrintGrid overwrites every interval-th row and column with c
func (w *ImageWriter) PrintGrid(interval int, c core.Color) {
	if interval <= 0 {
		return
	}
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			if x%interval == 0 || y%interval == 0 {
				w.WritePixel(x, y, c)
			}
		}
	}
}

// WritePNG encodes the image to path, creating parent directories as needed
func (w *ImageWriter) WritePNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(file, w.img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

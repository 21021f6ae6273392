package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Pixels written to the image
	TotalRays        int           // Primary rays traced
	AverageRays      float64       // Average primary rays per pixel
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the finished image, 0..1
}

func (s *RenderStats) addRow(r RowResult) {
	s.TotalPixels += r.Pixels
	s.TotalRays += r.Rays
}

func (s *RenderStats) finalize(img image.Image, d time.Duration) {
	if s.TotalPixels > 0 {
		s.AverageRays = float64(s.TotalRays) / float64(s.TotalPixels)
	}
	s.Duration = d
	s.AverageLuminance = CalculateAverageLuminance(img)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in 0..1
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535
		}
	}
	return total / float64(count)
}

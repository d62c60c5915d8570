package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/midbel/sketch"
)

// Exporter is the render-to-bitmap seam every chart exposes: it draws
// the full pipeline with the animation forced to its terminal state.
type Exporter interface {
	Export(sketch.Canvas)
	Resize(w, h float64)
}

// Render draws the chart into a fresh image at the requested size.
func Render(chart Exporter, w, h int) *image.RGBA {
	cv := New(w, h)
	chart.Resize(float64(w), float64(h))
	chart.Export(cv)
	return cv.Image()
}

// SavePNG renders the chart at the given size and writes it to path.
func SavePNG(path string, chart Exporter, w, h int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, Render(chart, w, h)); err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return nil
}

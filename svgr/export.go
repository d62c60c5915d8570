package svgr

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/midbel/sketch"
)

// Exporter mirrors the raster export seam: the chart draws its full
// pipeline with animations forced to their terminal state.
type Exporter interface {
	Export(sketch.Canvas)
	Resize(w, h float64)
}

// Render writes the chart as an SVG document at the given size.
func Render(w io.Writer, chart Exporter, width, height int) error {
	cv := New(float64(width), float64(height))
	chart.Resize(float64(width), float64(height))
	chart.Export(cv)
	bw := bufio.NewWriter(w)
	cv.root.Render(bw)
	return bw.Flush()
}

// SaveSVG renders the chart at the given size and writes it to path.
func SaveSVG(path string, chart Exporter, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	if err := Render(f, chart, width, height); err != nil {
		return fmt.Errorf("export: %s: %w", path, err)
	}
	return nil
}

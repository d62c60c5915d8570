package raster

import (
	"image/color"
	"testing"

	"github.com/midbel/sketch"
)

func TestRenderFillsBackground(t *testing.T) {
	chart := sketch.NewLineChart(sketch.Dark())
	s := sketch.NewSerie("a", sketch.Category10.Color(0))
	s.Append(sketch.NumberPoint(0, 1), sketch.NumberPoint(1, 3), sketch.NumberPoint(2, 2))
	chart.SetData([]sketch.Serie{s})

	img := Render(chart, 320, 200)
	b := img.Bounds()
	if b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("image size %dx%d", b.Dx(), b.Dy())
	}
	// every pixel is painted opaque by the background stage
	for _, p := range [][2]int{{0, 0}, {319, 0}, {160, 100}, {0, 199}} {
		_, _, _, a := img.At(p[0], p[1]).RGBA()
		if a != 0xffff {
			t.Errorf("pixel (%d,%d) alpha %d, want opaque", p[0], p[1], a)
		}
	}
}

func TestFillRectWritesPixels(t *testing.T) {
	cv := New(10, 10)
	cv.FillRect(sketch.NewRect(2, 2, 6, 6), color.NRGBA{R: 255, A: 255})
	r, _, _, _ := cv.Image().At(5, 5).RGBA()
	if r == 0 {
		t.Error("rect interior not painted")
	}
	r, _, _, _ = cv.Image().At(0, 0).RGBA()
	if r != 0 {
		t.Error("pixel outside the rect painted")
	}
}

func TestClipStopsPaint(t *testing.T) {
	cv := New(20, 20)
	cv.Clip(sketch.NewRect(0, 0, 10, 10))
	cv.FillRect(sketch.NewRect(0, 0, 20, 20), color.NRGBA{G: 255, A: 255})
	cv.ResetClip()
	_, g, _, _ := cv.Image().At(5, 5).RGBA()
	if g == 0 {
		t.Error("inside clip not painted")
	}
	_, g, _, _ = cv.Image().At(15, 15).RGBA()
	if g != 0 {
		t.Error("outside clip painted")
	}
}

func TestTranslateMovesPaint(t *testing.T) {
	cv := New(20, 20)
	cv.Push()
	cv.Translate(10, 10)
	cv.FillRect(sketch.NewRect(0, 0, 5, 5), color.NRGBA{B: 255, A: 255})
	cv.Pop()
	_, _, b, _ := cv.Image().At(12, 12).RGBA()
	if b == 0 {
		t.Error("translated rect missing")
	}
	_, _, b, _ = cv.Image().At(2, 2).RGBA()
	if b != 0 {
		t.Error("untranslated area painted")
	}
}

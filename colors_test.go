package sketch

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	data := []struct {
		in   string
		want color.NRGBA
	}{
		{"ff0000", color.NRGBA{R: 255, A: 255}},
		{"#00ff00", color.NRGBA{G: 255, A: 255}},
		{"0000ff80", color.NRGBA{B: 255, A: 128}},
		{"bogus", color.NRGBA{A: 255}},
		{"", color.NRGBA{A: 255}},
	}
	for _, d := range data {
		if got := ParseHex(d.in); got != d.want {
			t.Errorf("ParseHex(%q) = %v, want %v", d.in, got, d.want)
		}
	}
}

func TestPaletteCycles(t *testing.T) {
	if len(Category10) != 10 || len(Tableau10) != 10 {
		t.Fatalf("palette sizes %d, %d", len(Category10), len(Tableau10))
	}
	if Category10.Color(10) != Category10.Color(0) {
		t.Error("palette should cycle past the end")
	}
	if Category10.Color(-3) != Category10.Color(3) {
		t.Error("negative index should not panic or diverge")
	}
}

func TestPaletteAt(t *testing.T) {
	p := Viridis.Stops()
	if len(p) != 11 {
		t.Fatalf("viridis has %d stops, want 11", len(p))
	}
	if got := p.At(0); got != ParseHex("440154") {
		t.Errorf("viridis at 0: %v", got)
	}
	if got := p.At(1); got != ParseHex("fde725") {
		t.Errorf("viridis at 1: %v", got)
	}
	if got := p.At(-1); got != p[0] {
		t.Errorf("below range: %v", got)
	}
	if got := p.At(2); got != p[len(p)-1] {
		t.Errorf("above range: %v", got)
	}
}

func TestColorMapStops(t *testing.T) {
	maps := []ColorMap{Viridis, Plasma, Inferno, Magma, Turbo, RedBlue, GreenRed}
	for _, m := range maps {
		if n := len(m.Stops()); n != 11 {
			t.Errorf("map %d has %d stops", m, n)
		}
	}
	if got := ColorMap(99).Stops(); len(got) != 11 {
		t.Error("unknown map should fall back to viridis")
	}
}

func TestEmptyPalette(t *testing.T) {
	var p Palette
	if got := p.Color(3); got != (color.NRGBA{A: 0xFF}) {
		t.Errorf("empty palette color: %v", got)
	}
	if got := p.At(0.5); got != (color.NRGBA{A: 0xFF}) {
		t.Errorf("empty palette at: %v", got)
	}
}

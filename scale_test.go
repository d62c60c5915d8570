package sketch

import (
	"math"
	"testing"
)

func TestValueToPixelRoundTrip(t *testing.T) {
	data := []struct {
		v, min, max, span float64
		invert            bool
	}{
		{5, 0, 10, 100, false},
		{5, 0, 10, 100, true},
		{-3, -10, 10, 640, false},
		{0.25, 0, 1, 48, true},
		{1e6, 0, 2e6, 800, false},
	}
	for _, d := range data {
		px := ValueToPixel(d.v, d.min, d.max, d.span, d.invert)
		got := PixelToValue(px, d.min, d.max, d.span, d.invert)
		if math.Abs(got-d.v) > 1e-9 {
			t.Errorf("round trip %v: got %f", d, got)
		}
	}
}

func TestValueToPixelBounds(t *testing.T) {
	if px := ValueToPixel(0, 0, 10, 100, false); px != 0 {
		t.Errorf("min maps to %f, want 0", px)
	}
	if px := ValueToPixel(10, 0, 10, 100, false); px != 100 {
		t.Errorf("max maps to %f, want 100", px)
	}
	if px := ValueToPixel(0, 0, 10, 100, true); px != 100 {
		t.Errorf("inverted min maps to %f, want 100", px)
	}
}

func TestValueToPixelDegenerate(t *testing.T) {
	if px := ValueToPixel(7, 7, 7, 100, false); px != 50 {
		t.Errorf("collapsed interval maps to %f, want 50", px)
	}
}

func TestNiceScaleContains(t *testing.T) {
	data := []struct {
		min, max float64
	}{
		{0, 100},
		{3, 97},
		{-17.5, 42.3},
		{0.001, 0.0042},
		{-5000, -200},
		{0.5, 0.6},
	}
	for _, d := range data {
		lo, hi, tick := NiceScale(d.min, d.max)
		if lo > d.min || hi < d.max {
			t.Errorf("NiceScale(%f, %f) = [%f, %f] does not contain input", d.min, d.max, lo, hi)
		}
		if tick <= 0 {
			t.Errorf("NiceScale(%f, %f) tick %f", d.min, d.max, tick)
		}
		mant := tick / math.Pow(10, math.Floor(math.Log10(tick)))
		ok := false
		for _, m := range []float64{1, 2, 5, 10} {
			if math.Abs(mant-m) < 1e-9 {
				ok = true
			}
		}
		if !ok {
			t.Errorf("tick %f mantissa %f not in 1-2-5 ladder", tick, mant)
		}
	}
}

func TestNiceScaleDegenerate(t *testing.T) {
	lo, hi, tick := NiceScale(4, 4)
	if lo != 3 || hi != 5 || tick != 0.5 {
		t.Errorf("got [%f, %f] tick %f", lo, hi, tick)
	}
}

func TestNiceScaleSwapped(t *testing.T) {
	lo, hi, _ := NiceScale(10, 0)
	if lo > 0 || hi < 10 {
		t.Errorf("swapped input not normalized: [%f, %f]", lo, hi)
	}
}

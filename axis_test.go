package sketch

import (
	"testing"
	"time"
)

func TestAxisFit(t *testing.T) {
	a := NewAxis(LinearAxis)
	a.fit(3, 97)
	if a.Min > 3 || a.Max < 97 {
		t.Errorf("fit [%f, %f] does not cover the data", a.Min, a.Max)
	}
	if a.Max <= a.Min {
		t.Error("degenerate interval after fit")
	}
}

func TestAxisFitDegenerate(t *testing.T) {
	a := NewAxis(LinearAxis)
	a.fit(5, 5)
	if a.Max <= a.Min {
		t.Errorf("degenerate input left [%f, %f]", a.Min, a.Max)
	}
}

func TestAxisFitManual(t *testing.T) {
	a := NewAxis(LinearAxis)
	a.AutoScale = false
	a.Min, a.Max = 0, 50
	a.fit(3, 97)
	if a.Min != 0 || a.Max != 50 {
		t.Errorf("manual axis rescaled to [%f, %f]", a.Min, a.Max)
	}
}

func TestAxisTicks(t *testing.T) {
	a := NewAxis(LinearAxis)
	a.Min, a.Max, a.Tick = 0, 100, 25
	ticks := a.Ticks()
	want := []float64{0, 25, 50, 75, 100}
	if len(ticks) != len(want) {
		t.Fatalf("got %d ticks: %v", len(ticks), ticks)
	}
	for i, v := range want {
		if ticks[i] != v {
			t.Errorf("tick %d = %f, want %f", i, ticks[i], v)
		}
	}
}

func TestAxisTicksInvalid(t *testing.T) {
	a := NewAxis(LinearAxis)
	a.Min, a.Max, a.Tick = 0, 10, 0
	if got := a.Ticks(); got != nil {
		t.Errorf("zero tick step should yield no ticks, got %v", got)
	}
}

func TestAxisLabel(t *testing.T) {
	a := NewAxis(LinearAxis)
	a.Tick = 25
	if got := a.label(50); got != "50" {
		t.Errorf("integer tick label %q", got)
	}
	a.Tick = 0.25
	if got := a.label(0.5); got != "0.50" {
		t.Errorf("fractional tick label %q", got)
	}
}

func TestAxisLabelDateTime(t *testing.T) {
	a := NewAxis(DateTimeAxis)
	when := time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)
	if got := a.label(float64(when.Unix())); got != "12:30:45" {
		t.Errorf("datetime label %q", got)
	}
	a.Format = "2006-01-02"
	if got := a.label(float64(when.Unix())); got != "2024-06-01" {
		t.Errorf("custom layout label %q", got)
	}
}

func TestOrientation(t *testing.T) {
	if !OrientLeft.Vertical() || !OrientRight.Vertical() {
		t.Error("left and right are vertical")
	}
	if OrientTop.Vertical() || OrientBottom.Vertical() {
		t.Error("top and bottom are horizontal")
	}
	if !OrientRight.Reverse() || !OrientTop.Reverse() {
		t.Error("right and top are reversed")
	}
}

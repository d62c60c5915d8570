package sketch

import (
	"image/color"
	"testing"
	"time"
)

// nullCanvas satisfies Canvas for tests that only exercise the engine
// logic around the paint pipeline.
type nullCanvas struct {
	w, h float64
}

func (n nullCanvas) Size() (float64, float64)                                 { return n.w, n.h }
func (nullCanvas) FillRect(Rect, color.NRGBA)                                 {}
func (nullCanvas) StrokeRect(Rect, float64, color.NRGBA)                      {}
func (nullCanvas) FillRoundRect(Rect, float64, color.NRGBA)                   {}
func (nullCanvas) FillRectVGradient(Rect, color.NRGBA, color.NRGBA)           {}
func (nullCanvas) Line(Pos, Pos, float64, color.NRGBA, []float64)             {}
func (nullCanvas) FillCircle(Pos, float64, color.NRGBA)                       {}
func (nullCanvas) StrokeCircle(Pos, float64, float64, color.NRGBA)            {}
func (nullCanvas) FillCircleRGradient(Pos, float64, color.NRGBA, color.NRGBA) {}
func (nullCanvas) FillEllipse(Pos, float64, float64, color.NRGBA)             {}
func (nullCanvas) FillPath([]Pos, color.NRGBA)                                {}
func (nullCanvas) FillPathVGradient([]Pos, color.NRGBA, color.NRGBA)          {}
func (nullCanvas) StrokePath([]Pos, float64, color.NRGBA, bool)               {}
func (nullCanvas) Text(string, Pos, float64, color.NRGBA, Align)              {}
func (nullCanvas) TextSize(str string, size float64) (float64, float64) {
	return float64(len(str)) * size * 0.6, size
}
func (nullCanvas) Clip(Rect)                  {}
func (nullCanvas) ResetClip()                 {}
func (nullCanvas) Translate(float64, float64) {}
func (nullCanvas) ScaleBy(float64, float64)   {}
func (nullCanvas) Rotate(float64)             {}
func (nullCanvas) Push()                      {}
func (nullCanvas) Pop()                       {}

func testSerie(title string) Serie {
	s := NewSerie(title, Category10.Color(0))
	s.Append(NumberPoint(0, 10), NumberPoint(1, 20), NumberPoint(2, 15))
	return s
}

func TestChartLifecycle(t *testing.T) {
	c := NewLineChart(Dark())
	if c.State() != Empty {
		t.Fatalf("fresh chart state %d", c.State())
	}
	var finished bool
	c.OnAnimationFinished = func() { finished = true }
	c.SetData([]Serie{testSerie("a")})
	if c.State() != Animating {
		t.Fatalf("after data state %d, want animating", c.State())
	}
	for i := 0; i < 200 && c.State() != Idle; i++ {
		c.Tick(16 * time.Millisecond)
	}
	if c.State() != Idle {
		t.Fatal("animation never settled")
	}
	if !finished {
		t.Error("finish callback not invoked")
	}
}

func TestChartNoAnimate(t *testing.T) {
	c := NewLineChart(Dark())
	c.Effects.Animate = false
	c.SetData([]Serie{testSerie("a")})
	if c.State() != Idle {
		t.Errorf("state %d, want idle without animation", c.State())
	}
	if c.Animation().Progress != 1 {
		t.Errorf("progress %f, want 1", c.Animation().Progress)
	}
}

func TestWheelClamp(t *testing.T) {
	c := NewLineChart(Dark())
	for i := 0; i < 100; i++ {
		c.Wheel(1)
	}
	if c.Zoom() != 10 {
		t.Errorf("zoom %f, want clamped to 10", c.Zoom())
	}
	for i := 0; i < 200; i++ {
		c.Wheel(-1)
	}
	if c.Zoom() != 0.1 {
		t.Errorf("zoom %f, want clamped to 0.1", c.Zoom())
	}
	z := c.Zoom()
	c.Wheel(0)
	if c.Zoom() != z {
		t.Error("zero delta should not change zoom")
	}
}

func TestDoubleClickResets(t *testing.T) {
	c := NewLineChart(Dark())
	c.Wheel(1)
	c.Wheel(1)
	c.Press(Pos{100, 100}, ButtonLeft)
	c.Move(Pos{150, 140})
	c.Release(Pos{150, 140})
	if c.Zoom() == 1 && c.Pan() == (Pos{}) {
		t.Fatal("setup failed to move the view")
	}
	c.DoubleClick(Pos{10, 10})
	if c.Zoom() != 1 || c.Pan() != (Pos{}) {
		t.Errorf("zoom %f pan %v after reset", c.Zoom(), c.Pan())
	}
}

func TestPanDragSuppressesClick(t *testing.T) {
	c := NewLineChart(Dark())
	c.SetData([]Serie{testSerie("a")})
	var clicked bool
	c.OnChartClicked = func(Pos) { clicked = true }
	c.Press(Pos{100, 100}, ButtonLeft)
	c.Move(Pos{120, 130})
	c.Release(Pos{120, 130})
	if c.Pan() != (Pos{20, 30}) {
		t.Errorf("pan %v, want {20 30}", c.Pan())
	}
	if clicked {
		t.Error("drag should not report a click")
	}
}

func TestClickSelectsNearestPoint(t *testing.T) {
	c := NewLineChart(Dark())
	c.SetData([]Serie{testSerie("a")})
	c.screen = [][]Pos{{{100, 100}, {200, 100}}}
	var gotSerie, gotPoint = -1, -1
	c.OnPointClicked = func(serie, point int) { gotSerie, gotPoint = serie, point }
	c.Press(Pos{203, 102}, ButtonLeft)
	c.Release(Pos{203, 102})
	if gotSerie != 0 || gotPoint != 1 {
		t.Errorf("clicked (%d, %d), want (0, 1)", gotSerie, gotPoint)
	}
	if c.Selected() != (Hit{Serie: 0, Point: 1}) {
		t.Errorf("selected %v", c.Selected())
	}
}

func TestClickBeyondThresholdMisses(t *testing.T) {
	c := NewLineChart(Dark())
	c.SetData([]Serie{testSerie("a")})
	c.screen = [][]Pos{{{100, 100}}}
	var pointClicked, chartClicked bool
	c.OnPointClicked = func(int, int) { pointClicked = true }
	c.OnChartClicked = func(Pos) { chartClicked = true }
	c.Press(Pos{100, 111}, ButtonLeft)
	c.Release(Pos{100, 111})
	if pointClicked {
		t.Error("hit reported 11px away with threshold 10")
	}
	if !chartClicked {
		t.Error("empty area click not reported")
	}
}

func TestSelectionRect(t *testing.T) {
	c := NewLineChart(Dark())
	var sel Rect
	c.OnSelectionChanged = func(r Rect) { sel = r }
	c.Press(Pos{50, 40}, ButtonRight)
	c.Move(Pos{10, 10})
	c.Release(Pos{10, 10})
	if sel != NewRect(10, 10, 40, 30) {
		t.Errorf("selection %v, want normalized {10 10 40 30}", sel)
	}
}

func TestTooltipDelay(t *testing.T) {
	c := NewLineChart(Dark())
	c.Effects.Animate = false
	c.SetData([]Serie{testSerie("a")})
	c.screen = [][]Pos{{{100, 100}}}
	c.Move(Pos{102, 100})
	if !c.Hovered().Ok() {
		t.Fatal("hover not registered")
	}
	c.Tick(400 * time.Millisecond)
	if c.tooltipReady {
		t.Error("tooltip armed before the delay elapsed")
	}
	c.Tick(200 * time.Millisecond)
	if !c.tooltipReady {
		t.Error("tooltip not armed after the delay")
	}
	// moving to another point rearms the delay
	c.screen = [][]Pos{{{100, 100}, {300, 100}}}
	c.Move(Pos{300, 100})
	if c.tooltipReady {
		t.Error("tooltip should rearm on hover change")
	}
}

func TestResizeBumpsBackgroundGen(t *testing.T) {
	c := NewLineChart(Dark())
	gen := c.BackgroundGen()
	c.Resize(800, 500)
	if c.BackgroundGen() == gen {
		t.Error("resize should move the background token")
	}
	gen = c.BackgroundGen()
	c.Resize(800, 500)
	if c.BackgroundGen() != gen {
		t.Error("same size resize should not move the token")
	}
	c.SetTheme(Light())
	if c.BackgroundGen() == gen {
		t.Error("theme change should move the token")
	}
}

func TestExportRestoresAnimation(t *testing.T) {
	c := NewLineChart(Dark())
	c.SetData([]Serie{testSerie("a")})
	c.Tick(100 * time.Millisecond)
	var (
		state = c.State()
		prog  = c.Animation().Progress
	)
	c.Export(nullCanvas{w: 640, h: 400})
	if c.State() != state || c.Animation().Progress != prog {
		t.Errorf("export disturbed the clock: state %d progress %f", c.State(), c.Animation().Progress)
	}
}

func TestToDataSpace(t *testing.T) {
	c := NewLineChart(Dark())
	c.Width, c.Height = 640, 400
	center := c.plotArea().Center()
	c.zoom = 2
	c.pan = Pos{30, -10}
	var (
		p    = Pos{200, 150}
		fwd  = Pos{(p.X-center.X)*c.zoom + center.X + c.pan.X, (p.Y-center.Y)*c.zoom + center.Y + c.pan.Y}
		back = c.toDataSpace(fwd)
	)
	if Distance(back, p) > 1e-9 {
		t.Errorf("round trip drifted: %v -> %v", p, back)
	}
}

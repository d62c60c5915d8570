package sketch

import (
	"image/color"
	"strconv"
	"time"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

type AxisKind int

const (
	LinearAxis AxisKind = iota
	DateTimeAxis
)

type Axis struct {
	Min  float64
	Max  float64
	Tick float64
	Kind AxisKind

	AutoScale  bool
	Visible    bool
	ShowGrid   bool
	ShowLabels bool

	Title     string
	Format    string
	LineColor color.NRGBA
	GridColor color.NRGBA
}

func NewAxis(kind AxisKind) Axis {
	return Axis{
		Kind:       kind,
		Max:        1,
		Tick:       0.5,
		AutoScale:  true,
		Visible:    true,
		ShowGrid:   true,
		ShowLabels: true,
	}
}

// fit rounds the observed data range outward to nice boundaries. The
// resulting interval is never degenerate: Max > Min holds afterwards.
func (a *Axis) fit(lo, hi float64) {
	if !a.AutoScale {
		if a.Max <= a.Min {
			a.Max = a.Min + 1
		}
		return
	}
	a.Min, a.Max, a.Tick = NiceScale(lo, hi)
	if a.Max <= a.Min {
		a.Max = a.Min + 1
		a.Tick = 0.5
	}
}

func (a Axis) Ticks() []float64 {
	if a.Tick <= 0 || a.Max <= a.Min {
		return nil
	}
	var all []float64
	for v := a.Min; v <= a.Max+a.Tick/2; v += a.Tick {
		all = append(all, v)
	}
	return all
}

func (a Axis) label(v float64) string {
	if a.Kind == DateTimeAxis {
		layout := a.Format
		if layout == "" {
			layout = "15:04:05"
		}
		return time.Unix(int64(v), 0).UTC().Format(layout)
	}
	prec := 2
	if a.Tick >= 1 {
		prec = 0
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// draw paints the axis line, ticks and labels along one side of the
// plot area. Grid lines are painted separately so they stay under the
// data layer.
func (a Axis) draw(cv Canvas, area Rect, orient Orientation, theme Theme) {
	if !a.Visible {
		return
	}
	line := a.LineColor
	if line.A == 0 {
		line = theme.Color("border")
	}
	text := theme.Color("textSecondary")
	if orient.Vertical() {
		cv.Line(NewPos(area.X, area.Y), NewPos(area.X, area.Y+area.H), 1, line, nil)
	} else {
		cv.Line(NewPos(area.X, area.Y+area.H), NewPos(area.X+area.W, area.Y+area.H), 1, line, nil)
	}
	for _, v := range a.Ticks() {
		if orient.Vertical() {
			y := area.Y + ValueToPixel(v, a.Min, a.Max, area.H, true)
			cv.Line(NewPos(area.X-4, y), NewPos(area.X, y), 1, line, nil)
			if a.ShowLabels {
				cv.Text(a.label(v), NewPos(area.X-8, y+FontSize*0.35), FontSize*0.85, text, AlignRight)
			}
		} else {
			x := area.X + ValueToPixel(v, a.Min, a.Max, area.W, false)
			cv.Line(NewPos(x, area.Y+area.H), NewPos(x, area.Y+area.H+4), 1, line, nil)
			if a.ShowLabels {
				cv.Text(a.label(v), NewPos(x, area.Y+area.H+4+FontSize), FontSize*0.85, text, AlignCenter)
			}
		}
	}
	if a.Title != "" {
		if orient.Vertical() {
			cv.Text(a.Title, NewPos(area.X-36, area.Y+area.H/2), FontSize*0.9, text, AlignCenter)
		} else {
			cv.Text(a.Title, NewPos(area.X+area.W/2, area.Y+area.H+FontSize*2.6), FontSize*0.9, text, AlignCenter)
		}
	}
}

func (a Axis) drawGrid(cv Canvas, area Rect, orient Orientation, theme Theme) {
	if !a.Visible || !a.ShowGrid {
		return
	}
	grid := a.GridColor
	if grid.A == 0 {
		grid = theme.Color("grid")
	}
	for _, v := range a.Ticks() {
		if orient.Vertical() {
			y := area.Y + ValueToPixel(v, a.Min, a.Max, area.H, true)
			cv.Line(NewPos(area.X, y), NewPos(area.X+area.W, y), 1, grid, nil)
		} else {
			x := area.X + ValueToPixel(v, a.Min, a.Max, area.W, false)
			cv.Line(NewPos(x, area.Y), NewPos(x, area.Y+area.H), 1, grid, nil)
		}
	}
}

package sketch

import (
	"image/color"
	"time"
)

// DataPoint is immutable once appended to a serie.
type DataPoint struct {
	X     float64
	Y     float64
	When  time.Time
	Label string
}

func NumberPoint(x, y float64) DataPoint {
	return DataPoint{
		X: x,
		Y: y,
	}
}

func TimePoint(when time.Time, y float64) DataPoint {
	return DataPoint{
		X:    float64(when.Unix()),
		Y:    y,
		When: when,
	}
}

func LabelPoint(label string, y float64) DataPoint {
	return DataPoint{
		Y:     y,
		Label: label,
	}
}

type Serie struct {
	Title       string
	Color       color.NRGBA
	Fill        color.NRGBA
	LineWidth   float64
	PointRadius float64
	Dashed      bool
	Visible     bool
	ShowLine    bool
	ShowPoints  bool
	FillArea    bool

	Points []DataPoint
}

func NewSerie(title string, c color.NRGBA) Serie {
	return Serie{
		Title:       title,
		Color:       c,
		Fill:        withAlpha(c, 90),
		LineWidth:   2,
		PointRadius: 4,
		Visible:     true,
		ShowLine:    true,
		ShowPoints:  true,
	}
}

func (s *Serie) Append(points ...DataPoint) {
	s.Points = append(s.Points, points...)
}

func (s Serie) Len() int {
	return len(s.Points)
}

// Point returns the i-th point; out of range indices yield a zero
// point and false instead of panicking.
func (s Serie) Point(i int) (DataPoint, bool) {
	if i < 0 || i >= len(s.Points) {
		return DataPoint{}, false
	}
	return s.Points[i], true
}

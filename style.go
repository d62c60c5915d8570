package sketch

import (
	"image/color"
)

// Theme resolves named colors for the engine. Charts keep a reference
// to the provider given at construction; there is no process wide
// default, so two charts can render with different themes side by side.
type Theme interface {
	Color(name string) color.NRGBA
}

type MapTheme map[string]color.NRGBA

func (m MapTheme) Color(name string) color.NRGBA {
	c, ok := m[name]
	if !ok {
		return color.NRGBA{A: 0xFF}
	}
	return c
}

func Dark() Theme {
	return MapTheme{
		"background":    ParseHex("1e1e2e"),
		"surface":       ParseHex("27273a"),
		"border":        ParseHex("3c3c52"),
		"grid":          ParseHex("32324a"),
		"text":          ParseHex("e4e4ef"),
		"textSecondary": ParseHex("8f8fa8"),
		"primary":       ParseHex("7aa2f7"),
		"accent":        ParseHex("bb9af7"),
		"positive":      ParseHex("9ece6a"),
		"negative":      ParseHex("f7768e"),
		"tooltip":       ParseHex("16161e"),
	}
}

func Light() Theme {
	return MapTheme{
		"background":    ParseHex("ffffff"),
		"surface":       ParseHex("f4f4f8"),
		"border":        ParseHex("d0d0da"),
		"grid":          ParseHex("e6e6ee"),
		"text":          ParseHex("1a1a24"),
		"textSecondary": ParseHex("6b6b80"),
		"primary":       ParseHex("2563eb"),
		"accent":        ParseHex("7c3aed"),
		"positive":      ParseHex("15803d"),
		"negative":      ParseHex("b91c1c"),
		"tooltip":       ParseHex("ffffff"),
	}
}

type LineStyle struct {
	Width       float64
	PointRadius float64
	Smooth      bool
	DrawOn      bool
	Glow        bool
	FillOpacity float64
	Dash        []float64
}

func DefaultLineStyle() LineStyle {
	return LineStyle{
		Width:       2,
		PointRadius: 4,
		Smooth:      true,
		DrawOn:      true,
		Glow:        true,
		FillOpacity: 0.35,
		Dash:        []float64{6, 4},
	}
}

type BarStyle struct {
	Spacing    float64
	Rounding   float64
	ShowValues bool
}

func DefaultBarStyle() BarStyle {
	return BarStyle{
		Spacing:  0.2,
		Rounding: 3,
	}
}

type CircularStyle struct {
	StartAngle float64
	Gap        float64
	InnerRatio float64
	ShowLabels bool
}

func DefaultCircularStyle() CircularStyle {
	return CircularStyle{
		StartAngle: -90,
		Gap:        2,
		InnerRatio: 0.55,
		ShowLabels: true,
	}
}

type HeatmapStyle struct {
	Map       ColorMap
	CellGap   float64
	ShowCells bool
}

func DefaultHeatmapStyle() HeatmapStyle {
	return HeatmapStyle{
		Map:     Viridis,
		CellGap: 1,
	}
}

type SparkStyle struct {
	Width      float64
	FillAlpha  uint8
	ShowMinMax bool
	ShowLast   bool
}

func DefaultSparkStyle() SparkStyle {
	return SparkStyle{
		Width:      1.5,
		FillAlpha:  80,
		ShowMinMax: true,
	}
}

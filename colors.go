package sketch

import (
	"image/color"
	"strconv"
	"strings"
)

type Palette []color.NRGBA

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

// Color returns the i-th palette entry, cycling past the end.
func (p Palette) Color(i int) color.NRGBA {
	if len(p) == 0 {
		return color.NRGBA{A: 0xFF}
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// At samples the palette as a continuous map, interpolating between the
// two stops bracketing t in [0,1].
func (p Palette) At(t float64) color.NRGBA {
	if len(p) == 0 {
		return color.NRGBA{A: 0xFF}
	}
	if len(p) == 1 || t <= 0 {
		return p[0]
	}
	if t >= 1 {
		return p[len(p)-1]
	}
	var (
		span = t * float64(len(p)-1)
		ix   = int(span)
	)
	if ix >= len(p)-1 {
		return p[len(p)-1]
	}
	return LerpColor(p[ix], p[ix+1], span-float64(ix))
}

type ColorMap int

const (
	Viridis ColorMap = iota
	Plasma
	Inferno
	Magma
	Turbo
	RedBlue
	GreenRed
)

var colorMaps map[ColorMap]Palette

func init() {
	colorMaps = map[ColorMap]Palette{
		Viridis:  splitColorString("4401544627783e4a894368872a788e21908c22a88454c568a5db36d0e11bfde725"),
		Plasma:   splitColorString("0d088741049d6a00a88f0da4b12a90cc4778e16462f2844bfca636fcce25f0f921"),
		Inferno:  splitColorString("000004160b39420a686a176e932667bc3754dd513af37819fca50af6d746fcffa4"),
		Magma:    splitColorString("000004140e363b0f70641a808c2981b73779de4968f7705cfe9f6dfecf92fcfdbf"),
		Turbo:    splitColorString("30123b4145ab4675ed39a2fc1bcfd424eca661fc6ca4fc3bd1e834e5460b7a0403"),
		RedBlue:  splitColorString("67001fb2182bd6604df4a582fddbc7f7f7f7d1e5f092c5de4393c32166ac053061"),
		GreenRed: splitColorString("0068371a985066bd63a6d96ad9ef8bffffbffee08bfdae61f46d43d73027a50026"),
	}
}

// Stops returns the built in 11 stop palette for the map.
func (c ColorMap) Stops() Palette {
	p, ok := colorMaps[c]
	if !ok {
		return colorMaps[Viridis]
	}
	return p
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i+6 <= len(str); i += 6 {
		arr = append(arr, ParseHex(str[i:i+6]))
	}
	return arr
}

// ParseHex accepts RRGGBB or RRGGBBAA, with or without a leading #.
func ParseHex(str string) color.NRGBA {
	str = strings.TrimPrefix(str, "#")
	c := color.NRGBA{A: 0xFF}
	if len(str) != 6 && len(str) != 8 {
		return c
	}
	v, err := strconv.ParseUint(str, 16, 64)
	if err != nil {
		return c
	}
	if len(str) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

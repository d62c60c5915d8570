package sketch

import (
	"math"
)

// ValueToPixel maps v from the [min,max] data interval onto a pixel
// span. With invert set the pixel axis runs opposite to the data axis,
// which is the usual case for vertical screen coordinates. A collapsed
// interval maps everything to the middle of the span.
func ValueToPixel(v, min, max, span float64, invert bool) float64 {
	if max == min {
		return span / 2
	}
	px := (v - min) / (max - min) * span
	if invert {
		px = span - px
	}
	return px
}

// PixelToValue is the inverse of ValueToPixel for min < max.
func PixelToValue(px, min, max, span float64, invert bool) float64 {
	if span == 0 {
		return min
	}
	if invert {
		px = span - px
	}
	return min + px/span*(max-min)
}

const defaultTicks = 5

// NiceScale rounds [min,max] outward to tick boundaries taken from the
// 1-2-5 ladder. The returned interval always contains the input one.
func NiceScale(min, max float64) (float64, float64, float64) {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min - 1, max + 1, 0.5
	}
	var (
		span = niceNum(max-min, false)
		tick = niceNum(span/(defaultTicks-1), true)
		lo   = math.Floor(min/tick) * tick
		hi   = math.Ceil(max/tick) * tick
	)
	return lo, hi, tick
}

func niceNum(span float64, round bool) float64 {
	var (
		exp  = math.Floor(math.Log10(span))
		frac = span / math.Pow(10, exp)
		nice float64
	)
	if round {
		switch {
		case frac < 1.5:
			nice = 1
		case frac < 3:
			nice = 2
		case frac < 7:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case frac <= 1:
			nice = 1
		case frac <= 2:
			nice = 2
		case frac <= 5:
			nice = 5
		default:
			nice = 10
		}
	}
	return nice * math.Pow(10, exp)
}

package sketch

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

type BarMode int

const (
	BarVertical BarMode = iota
	BarHorizontal
	BarGrouped
	BarStacked
	BarWaterfall
	BarRange
)

const (
	growthStep    = 0.1
	growthEpsilon = 0.01
)

type barKey struct {
	cat   string
	serie string
}

type barRect struct {
	rect  Rect
	cat   int
	serie int
}

// BarChart renders one (category, serie) -> value map in six modes.
// Bars grow toward their target with a fixed low pass step per tick
// rather than a timed ease, so value updates glide smoothly even while
// a previous change is still settling.
type BarChart struct {
	Chart

	Style BarStyle
	Mode  BarMode

	categories []string
	names      []string
	colors     map[string]color.NRGBA
	values     map[barKey]float64
	shown      map[barKey]float64
	settled    bool

	rects []barRect

	OnBarClicked func(category, serie string)
}

func NewBarChart(theme Theme) *BarChart {
	c := BarChart{
		Chart:  newChart(theme),
		Style:  DefaultBarStyle(),
		colors: make(map[string]color.NRGBA),
		values: make(map[barKey]float64),
		shown:  make(map[barKey]float64),
	}
	c.X.ShowLabels = false
	c.X.ShowGrid = false
	c.plot = &c
	c.OnPointClicked = func(serie, point int) {
		if c.OnBarClicked == nil {
			return
		}
		if serie < 0 || serie >= len(c.names) || point < 0 || point >= len(c.categories) {
			return
		}
		c.OnBarClicked(c.categories[point], c.names[serie])
	}
	return &c
}

// SetValue registers the value for one (category, serie) pair. First
// mentions fix the category and serie order.
func (c *BarChart) SetValue(category, serie string, v float64) {
	if !contains(c.categories, category) {
		c.categories = append(c.categories, category)
	}
	if !contains(c.names, serie) {
		c.names = append(c.names, serie)
		c.colors[serie] = Category10.Color(len(c.names) - 1)
	}
	c.values[barKey{cat: category, serie: serie}] = v
	c.settled = false
	c.updateRanges()
	if c.state == Empty {
		c.dataChanged()
	} else {
		c.state = HasData
	}
}

func (c *BarChart) SetSerieColor(serie string, col color.NRGBA) {
	c.colors[serie] = col
}

func (c *BarChart) Value(category, serie string) (float64, bool) {
	v, ok := c.values[barKey{cat: category, serie: serie}]
	return v, ok
}

func (c *BarChart) Categories() []string {
	return append([]string(nil), c.categories...)
}

func (c *BarChart) Series() []string {
	return append([]string(nil), c.names...)
}

// StackTop returns the cumulative total at the given category after
// consuming series 0..k, the quantity stacked mode draws its segment
// tops from.
func (c *BarChart) StackTop(category string, k int) float64 {
	var total float64
	for i, name := range c.names {
		if i > k {
			break
		}
		total += c.values[barKey{cat: category, serie: name}]
	}
	return total
}

func contains(all []string, v string) bool {
	for _, s := range all {
		if s == v {
			return true
		}
	}
	return false
}

func (c *BarChart) updateRanges() {
	if len(c.categories) == 0 {
		return
	}
	var lo, hi float64
	switch c.Mode {
	case BarStacked:
		for _, cat := range c.categories {
			top := c.StackTop(cat, len(c.names)-1)
			hi = math.Max(hi, top)
			lo = math.Min(lo, top)
		}
	case BarWaterfall:
		var run float64
		for _, cat := range c.categories {
			run += c.values[barKey{cat: cat, serie: firstName(c.names)}]
			hi = math.Max(hi, run)
			lo = math.Min(lo, run)
		}
	default:
		for _, v := range c.values {
			hi = math.Max(hi, v)
			lo = math.Min(lo, v)
		}
	}
	c.Y.fit(lo, hi)
	c.X.Min, c.X.Max = 0, float64(len(c.categories))
}

func firstName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// tick glides every displayed value toward its target by a tenth of
// the remaining gap, snapping once within epsilon.
func (c *BarChart) tick(dt time.Duration) bool {
	if c.settled {
		return false
	}
	var moving bool
	for key, target := range c.values {
		cur, ok := c.shown[key]
		if !ok {
			cur = 0
		}
		if math.Abs(target-cur) <= growthEpsilon {
			c.shown[key] = target
			continue
		}
		if !c.Effects.Animate {
			c.shown[key] = target
			continue
		}
		c.shown[key] = Lerp(cur, target, growthStep)
		moving = true
	}
	if !moving {
		c.settled = true
	}
	return moving
}

func (c *BarChart) shownValue(cat, serie string) float64 {
	key := barKey{cat: cat, serie: serie}
	if !c.Effects.Animate {
		return c.values[key]
	}
	v, ok := c.shown[key]
	if !ok {
		return 0
	}
	return v
}

func (c *BarChart) drawData(cv Canvas, area Rect) {
	if len(c.categories) == 0 || len(c.names) == 0 {
		return
	}
	c.rects = c.rects[:0]
	switch c.Mode {
	case BarHorizontal:
		c.drawHorizontal(cv, area)
	case BarStacked:
		c.drawStacked(cv, area)
	case BarWaterfall:
		c.drawWaterfall(cv, area)
	case BarRange:
		c.drawRange(cv, area)
	default:
		c.drawVertical(cv, area)
	}
	c.drawCategoryLabels(cv, area)
}

func (c *BarChart) valuePixel(v float64, area Rect) float64 {
	return area.Y + ValueToPixel(v, c.Y.Min, c.Y.Max, area.H, true)
}

// baseValue is the axis value bars grow from: zero when the range
// straddles it, the nearest bound otherwise.
func (c *BarChart) baseValue() float64 {
	switch {
	case c.Y.Min > 0:
		return c.Y.Min
	case c.Y.Max < 0:
		return c.Y.Max
	default:
		return 0
	}
}

func (c *BarChart) slot(area Rect, cat int) (float64, float64) {
	width := area.W / float64(len(c.categories))
	return area.X + float64(cat)*width, width
}

// drawVertical also covers grouped mode: the category slot is split
// into one sub bar per serie minus the spacing ratio.
func (c *BarChart) drawVertical(cv Canvas, area Rect) {
	var (
		zero = c.valuePixel(c.baseValue(), area)
		n    = float64(len(c.names))
	)
	for ci, cat := range c.categories {
		x, width := c.slot(area, ci)
		var (
			gap = width * c.Style.Spacing / 2
			sub = (width - 2*gap) / n
		)
		for si, name := range c.names {
			var (
				v   = c.shownValue(cat, name)
				top = c.valuePixel(v, area)
				bx  = x + gap + float64(si)*sub
				r   Rect
			)
			if v >= 0 {
				r = NewRect(bx, top, sub*0.92, zero-top)
			} else {
				r = NewRect(bx, zero, sub*0.92, top-zero)
			}
			cv.FillRect(r, c.colors[name])
			c.rects = append(c.rects, barRect{rect: r, cat: ci, serie: si})
			if c.Style.ShowValues {
				cv.Text(formatValue(v), NewPos(r.X+r.W/2, r.Y-4), FontSize*0.75, c.theme.Color("textSecondary"), AlignCenter)
			}
		}
	}
}

func (c *BarChart) drawHorizontal(cv Canvas, area Rect) {
	var (
		zero = area.X + ValueToPixel(c.baseValue(), c.Y.Min, c.Y.Max, area.W, false)
		n    = float64(len(c.names))
	)
	for ci, cat := range c.categories {
		var (
			height = area.H / float64(len(c.categories))
			y      = area.Y + float64(ci)*height
			gap    = height * c.Style.Spacing / 2
			sub    = (height - 2*gap) / n
		)
		for si, name := range c.names {
			var (
				v    = c.shownValue(cat, name)
				endX = area.X + ValueToPixel(v, c.Y.Min, c.Y.Max, area.W, false)
				by   = y + gap + float64(si)*sub
				r    Rect
			)
			if endX >= zero {
				r = NewRect(zero, by, endX-zero, sub*0.92)
			} else {
				r = NewRect(endX, by, zero-endX, sub*0.92)
			}
			cv.FillRect(r, c.colors[name])
			c.rects = append(c.rects, barRect{rect: r, cat: ci, serie: si})
		}
	}
}

// drawStacked accumulates one cumulative total per category and draws
// every segment between consecutive totals, so segment tops always add
// up to the category sum.
func (c *BarChart) drawStacked(cv Canvas, area Rect) {
	for ci, cat := range c.categories {
		var (
			x, width = c.slot(area, ci)
			gap      = width * c.Style.Spacing / 2
			total    float64
		)
		for si, name := range c.names {
			var (
				prev = c.valuePixel(total, area)
				next float64
			)
			total += c.shownValue(cat, name)
			next = c.valuePixel(total, area)
			r := NewRect(x+gap, next, width-2*gap, prev-next)
			if r.H < 0 {
				r = NewRect(x+gap, prev, width-2*gap, next-prev)
			}
			cv.FillRect(r, c.colors[name])
			c.rects = append(c.rects, barRect{rect: r, cat: ci, serie: si})
		}
	}
}

// drawWaterfall tracks the running total across categories, drawing
// each bar between the previous and the new cumulative value, colored
// by sign, with a dashed connector across the gap.
func (c *BarChart) drawWaterfall(cv Canvas, area Rect) {
	if len(c.names) == 0 {
		return
	}
	var (
		name     = c.names[0]
		run      float64
		last     Rect
		lastTop  float64
		haveLast bool
	)
	for ci, cat := range c.categories {
		var (
			x, width = c.slot(area, ci)
			gap      = width * c.Style.Spacing / 2
			delta    = c.shownValue(cat, name)
			from     = c.valuePixel(run, area)
			to       = c.valuePixel(run+delta, area)
		)
		run += delta
		col := c.theme.Color("positive")
		if delta < 0 {
			col = c.theme.Color("negative")
		}
		r := NewRect(x+gap, math.Min(from, to), width-2*gap, math.Abs(from-to))
		cv.FillRect(r, col)
		c.rects = append(c.rects, barRect{rect: r, cat: ci, serie: 0})
		if haveLast {
			cv.Line(NewPos(last.X+last.W, lastTop), NewPos(r.X, from), 1, c.theme.Color("textSecondary"), []float64{4, 3})
		}
		last = r
		lastTop = to
		haveLast = true
	}
}

// drawRange spans, per category, the interval between the smallest and
// the largest serie value.
func (c *BarChart) drawRange(cv Canvas, area Rect) {
	for ci, cat := range c.categories {
		var (
			x, width = c.slot(area, ci)
			gap      = width * c.Style.Spacing / 2
			lo, hi   float64
			first    = true
		)
		for _, name := range c.names {
			v := c.shownValue(cat, name)
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		var (
			top = c.valuePixel(hi, area)
			bot = c.valuePixel(lo, area)
			r   = NewRect(x+gap, top, width-2*gap, bot-top)
		)
		cv.FillRect(r, withAlpha(c.theme.Color("primary"), 180))
		c.rects = append(c.rects, barRect{rect: r, cat: ci, serie: 0})
	}
}

func (c *BarChart) drawCategoryLabels(cv Canvas, area Rect) {
	if c.Mode == BarHorizontal {
		for ci, cat := range c.categories {
			height := area.H / float64(len(c.categories))
			y := area.Y + float64(ci)*height + height/2
			cv.Text(cat, NewPos(area.X-8, y+FontSize*0.35), FontSize*0.85, c.theme.Color("textSecondary"), AlignRight)
		}
		return
	}
	for ci, cat := range c.categories {
		x, width := c.slot(area, ci)
		cv.Text(cat, NewPos(x+width/2, area.Y+area.H+4+FontSize), FontSize*0.85, c.theme.Color("textSecondary"), AlignCenter)
	}
}

// Export snaps the displayed values onto their targets before drawing
// so an exported image never shows a half grown bar.
func (c *BarChart) Export(cv Canvas) {
	saved := c.shown
	c.shown = make(map[barKey]float64, len(c.values))
	for k, v := range c.values {
		c.shown[k] = v
	}
	c.Chart.Export(cv)
	c.shown = saved
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// nearest is rectangle containment over the bars drawn last frame.
func (c *BarChart) nearest(p Pos) Hit {
	for _, br := range c.rects {
		if br.rect.Contains(p) {
			return Hit{Serie: br.serie, Point: br.cat}
		}
	}
	return NoHit
}

func (c *BarChart) tooltipText(h Hit) string {
	if h.Serie < 0 || h.Serie >= len(c.names) || h.Point < 0 || h.Point >= len(c.categories) {
		return ""
	}
	var (
		cat  = c.categories[h.Point]
		name = c.names[h.Serie]
	)
	v, ok := c.Value(cat, name)
	if !ok {
		return ""
	}
	if len(c.names) == 1 {
		return fmt.Sprintf("%s: %s", cat, formatValue(v))
	}
	return fmt.Sprintf("%s / %s: %s", cat, name, formatValue(v))
}

func (c *BarChart) legendItems() []legendItem {
	if len(c.names) < 2 || c.Mode == BarWaterfall || c.Mode == BarRange {
		return nil
	}
	var items []legendItem
	for _, name := range c.names {
		items = append(items, legendItem{title: name, color: c.colors[name]})
	}
	return items
}

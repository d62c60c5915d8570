package sketch

import (
	"image/color"
	"time"
)

type State int

const (
	Empty State = iota
	HasData
	Animating
	Idle
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Widget is what a host event loop drives: one Draw per frame, one
// Tick per animation interval, pointer and resize events in between.
// Every chart kind implements it through the embedded Chart.
type Widget interface {
	Draw(Canvas)
	Tick(time.Duration) bool
	Press(Pos, Button)
	Move(Pos)
	Release(Pos)
	DoubleClick(Pos)
	Wheel(float64)
	Resize(w, h float64)
}

// Hit identifies a data point by serie and point index. NoHit is the
// miss sentinel; callers check Ok before dereferencing.
type Hit struct {
	Serie int
	Point int
}

var NoHit = Hit{Serie: -1, Point: -1}

func (h Hit) Ok() bool {
	return h.Serie >= 0 && h.Point >= 0
}

type LegendConfig struct {
	Show   bool
	Orient Orientation
}

type TooltipConfig struct {
	Show  bool
	Delay time.Duration
}

type EffectsConfig struct {
	Animate  bool
	Glow     bool
	Gradient bool
	Duration time.Duration
	Easing   Easing
}

const (
	DefaultThreshold = 10.0
	zoomStep         = 1.1
	minZoom          = 0.1
	maxZoom          = 10.0
	clickSlop        = 3.0
)

type legendItem struct {
	title string
	color color.NRGBA
}

// plot is the closed set of chart kinds behind the shared engine. Each
// concrete chart owns its data model and implements drawing, hit
// testing and per-tick animation against the shared pipeline.
type plot interface {
	drawData(cv Canvas, area Rect)
	nearest(p Pos) Hit
	tooltipText(h Hit) string
	legendItems() []legendItem
	tick(dt time.Duration) bool
}

// Chart is the shared engine core: animation clock, axes, margins,
// legend and tooltip configuration, zoom and pan, the interaction
// state machine, the background cache token and the paint pipeline.
// Concrete charts embed it and bind themselves as its plot.
type Chart struct {
	Title    string
	Subtitle string
	Width    float64
	Height   float64

	Padding

	X Axis
	Y Axis

	Legend    LegendConfig
	Tooltip   TooltipConfig
	Effects   EffectsConfig
	Threshold float64

	theme Theme
	anim  Animation
	state State

	zoom float64
	pan  Pos

	hover        Hit
	hoverAt      Pos
	hoverSince   time.Duration
	tooltipReady bool
	selected     Hit

	clock     time.Duration
	pressed   bool
	pressBtn  Button
	pressAt   Pos
	dragFrom  Pos
	moved     bool
	selecting bool
	selRect   Rect

	lastClick time.Duration

	bgGen uint64

	plot plot

	OnPointClicked      func(serie, point int)
	OnPointHovered      func(serie, point int)
	OnChartClicked      func(p Pos)
	OnSelectionChanged  func(r Rect)
	OnAnimationFinished func()
}

func newChart(theme Theme) Chart {
	if theme == nil {
		theme = Dark()
	}
	return Chart{
		Width:  640,
		Height: 400,
		Padding: Padding{
			Top:    44,
			Right:  24,
			Bottom: 52,
			Left:   64,
		},
		X: NewAxis(LinearAxis),
		Y: NewAxis(LinearAxis),
		Legend: LegendConfig{
			Show:   true,
			Orient: OrientTop | OrientRight,
		},
		Tooltip: TooltipConfig{
			Show:  true,
			Delay: 500 * time.Millisecond,
		},
		Effects: EffectsConfig{
			Animate:  true,
			Glow:     true,
			Gradient: true,
			Duration: DefaultDuration,
			Easing:   EaseOut,
		},
		Threshold: DefaultThreshold,
		theme:     theme,
		zoom:      1,
		hover:     NoHit,
		selected:  NoHit,
	}
}

func (c *Chart) Theme() Theme {
	return c.theme
}

func (c *Chart) SetTheme(t Theme) {
	if t == nil {
		return
	}
	c.theme = t
	c.bgGen++
}

func (c *Chart) State() State {
	return c.state
}

func (c *Chart) Zoom() float64 {
	return c.zoom
}

func (c *Chart) Pan() Pos {
	return c.pan
}

func (c *Chart) Hovered() Hit {
	return c.hover
}

func (c *Chart) Selected() Hit {
	return c.selected
}

func (c *Chart) Animation() Animation {
	return c.anim
}

// BackgroundGen is the cache invalidation token. A host holding a
// rendered background bitmap redraws it only when the token moved.
func (c *Chart) BackgroundGen() uint64 {
	return c.bgGen
}

func (c *Chart) StopAnimation() {
	c.anim.Stop()
	if c.state == Animating {
		c.state = Idle
	}
}

func (c *Chart) FinishAnimation() {
	c.anim.Finish()
	if c.state == Animating {
		c.state = Idle
	}
}

// dataChanged is called by the concrete charts whenever their model
// mutates: the lifecycle moves to HasData and, when effects allow it,
// a fresh animation starts.
func (c *Chart) dataChanged() {
	c.state = HasData
	c.hover = NoHit
	c.tooltipReady = false
	if c.Effects.Animate {
		c.anim.Easing = c.Effects.Easing
		c.anim.Start(c.Effects.Duration)
		c.state = Animating
	} else {
		c.anim.Finish()
		c.state = Idle
	}
}

func (c *Chart) plotArea() Rect {
	return NewRect(c.Padding.Left, c.Padding.Top, c.Width-c.Padding.Horizontal(), c.Height-c.Padding.Vertical())
}

// toDataSpace undoes the zoom and pan transform applied around the
// plot area center so that pointer positions line up with the cached
// screen geometry of the concrete charts.
func (c *Chart) toDataSpace(p Pos) Pos {
	if c.zoom == 1 && c.pan.X == 0 && c.pan.Y == 0 {
		return p
	}
	center := c.plotArea().Center()
	return Pos{
		X: (p.X-c.pan.X-center.X)/c.zoom + center.X,
		Y: (p.Y-c.pan.Y-center.Y)/c.zoom + center.Y,
	}
}

// Tick advances the animation clock by dt and reports whether a
// repaint is needed.
func (c *Chart) Tick(dt time.Duration) bool {
	c.clock += dt
	var repaint bool
	if c.state == Animating {
		if c.anim.Step(dt) {
			c.state = Idle
			if c.OnAnimationFinished != nil {
				c.OnAnimationFinished()
			}
		}
		repaint = true
	}
	if c.plot != nil && c.plot.tick(dt) {
		repaint = true
	}
	if c.hover.Ok() && !c.tooltipReady && c.clock-c.hoverSince >= c.Tooltip.Delay {
		c.tooltipReady = true
		repaint = true
	}
	return repaint
}

func (c *Chart) Press(p Pos, btn Button) {
	c.pressed = true
	c.pressBtn = btn
	c.pressAt = p
	c.dragFrom = p
	c.moved = false
	if btn == ButtonRight {
		c.selecting = true
		c.selRect = NewRect(p.X, p.Y, 0, 0)
	}
}

func (c *Chart) Move(p Pos) {
	if c.pressed {
		if Distance(p, c.pressAt) > clickSlop {
			c.moved = true
		}
		if c.selecting {
			c.selRect.W = p.X - c.selRect.X
			c.selRect.H = p.Y - c.selRect.Y
			return
		}
		c.pan.X += p.X - c.dragFrom.X
		c.pan.Y += p.Y - c.dragFrom.Y
		c.dragFrom = p
		return
	}
	hit := NoHit
	if c.plot != nil {
		hit = c.plot.nearest(c.toDataSpace(p))
	}
	c.hoverAt = p
	if hit != c.hover {
		c.hover = hit
		c.hoverSince = c.clock
		c.tooltipReady = false
		if hit.Ok() && c.OnPointHovered != nil {
			c.OnPointHovered(hit.Serie, hit.Point)
		}
	}
}

func (c *Chart) Release(p Pos) {
	if !c.pressed {
		return
	}
	c.pressed = false
	if c.selecting {
		c.selecting = false
		sel := c.selRect.Normalize()
		c.selRect = Rect{}
		if !sel.Empty() && c.OnSelectionChanged != nil {
			c.OnSelectionChanged(sel)
		}
		return
	}
	if c.moved {
		return
	}
	hit := NoHit
	if c.plot != nil {
		hit = c.plot.nearest(c.toDataSpace(p))
	}
	if hit.Ok() {
		c.selected = hit
		if c.OnPointClicked != nil {
			c.OnPointClicked(hit.Serie, hit.Point)
		}
		return
	}
	if c.OnChartClicked != nil {
		c.OnChartClicked(c.toDataSpace(p))
	}
}

func (c *Chart) DoubleClick(p Pos) {
	c.zoom = 1
	c.pan = Pos{}
}

// Wheel scales the zoom factor by 1.1 per notch, clamped to the
// [0.1,10] interval.
func (c *Chart) Wheel(dy float64) {
	switch {
	case dy > 0:
		c.zoom *= zoomStep
	case dy < 0:
		c.zoom /= zoomStep
	}
	if c.zoom < minZoom {
		c.zoom = minZoom
	}
	if c.zoom > maxZoom {
		c.zoom = maxZoom
	}
}

func (c *Chart) Resize(w, h float64) {
	if w == c.Width && h == c.Height {
		return
	}
	c.Width = w
	c.Height = h
	c.bgGen++
}

// Draw runs the full paint pipeline: background, grid, axes, data,
// title, legend, selection overlay, tooltip.
func (c *Chart) Draw(cv Canvas) {
	c.DrawBackground(cv)
	c.DrawOver(cv)
}

// DrawBackground paints only the background stage. Hosts that keep a
// background bitmap keyed by BackgroundGen render it through this and
// blit it afterwards.
func (c *Chart) DrawBackground(cv Canvas) {
	w, h := cv.Size()
	bg := c.theme.Color("background")
	if c.Effects.Gradient {
		cv.FillRectVGradient(NewRect(0, 0, w, h), bg, LerpColor(bg, c.theme.Color("surface"), 0.7))
	} else {
		cv.FillRect(NewRect(0, 0, w, h), bg)
	}
	cv.StrokeRect(NewRect(0.5, 0.5, w-1, h-1), 1, c.theme.Color("border"))
}

// DrawOver paints every stage after the background.
func (c *Chart) DrawOver(cv Canvas) {
	c.Width, c.Height = cv.Size()
	area := c.plotArea()
	if area.Empty() {
		return
	}

	c.Y.drawGrid(cv, area, OrientLeft, c.theme)
	c.X.drawGrid(cv, area, OrientBottom, c.theme)
	c.X.draw(cv, area, OrientBottom, c.theme)
	c.Y.draw(cv, area, OrientLeft, c.theme)

	if c.plot != nil && c.state != Empty {
		cv.Push()
		cv.Clip(area)
		if c.zoom != 1 || c.pan.X != 0 || c.pan.Y != 0 {
			center := area.Center()
			cv.Translate(c.pan.X+center.X, c.pan.Y+center.Y)
			cv.ScaleBy(c.zoom, c.zoom)
			cv.Translate(-center.X, -center.Y)
		}
		c.plot.drawData(cv, area)
		cv.ResetClip()
		cv.Pop()
	}

	c.drawTitle(cv)
	c.drawLegend(cv, area)
	c.drawSelection(cv)
	c.drawTooltip(cv)
}

func (c *Chart) drawTitle(cv Canvas) {
	if c.Title == "" {
		return
	}
	cv.Text(c.Title, NewPos(c.Width/2, FontSize*1.6), FontSize*1.2, c.theme.Color("text"), AlignCenter)
	if c.Subtitle != "" {
		cv.Text(c.Subtitle, NewPos(c.Width/2, FontSize*2.9), FontSize*0.9, c.theme.Color("textSecondary"), AlignCenter)
	}
}

func (c *Chart) drawLegend(cv Canvas, area Rect) {
	if !c.Legend.Show || c.plot == nil {
		return
	}
	items := c.plot.legendItems()
	if len(items) == 0 {
		return
	}
	var (
		offset = FontSize * 1.4
		height = float64(len(items)) * offset
		width  float64
	)
	for _, it := range items {
		w, _ := cv.TextSize(it.title, FontSize*0.85)
		if w > width {
			width = w
		}
	}
	width += 26

	var left, top float64
	switch o := c.Legend.Orient; {
	case o&OrientRight != 0:
		left = area.X + area.W - width
	case o&OrientLeft != 0:
		left = area.X + 8
	default:
		left = area.X + (area.W-width)/2
	}
	switch o := c.Legend.Orient; {
	case o&OrientBottom != 0:
		top = area.Y + area.H - height - 8
	default:
		top = area.Y + 8
	}

	for i, it := range items {
		y := top + float64(i)*offset + offset/2
		cv.Line(NewPos(left, y), NewPos(left+16, y), 2, it.color, nil)
		cv.Text(it.title, NewPos(left+22, y+FontSize*0.35), FontSize*0.85, c.theme.Color("text"), AlignLeft)
	}
}

func (c *Chart) drawSelection(cv Canvas) {
	if !c.selecting {
		return
	}
	sel := c.selRect.Normalize()
	if sel.Empty() {
		return
	}
	accent := c.theme.Color("accent")
	cv.FillRect(sel, withAlpha(accent, 40))
	var (
		tl = NewPos(sel.X, sel.Y)
		tr = NewPos(sel.X+sel.W, sel.Y)
		br = NewPos(sel.X+sel.W, sel.Y+sel.H)
		bl = NewPos(sel.X, sel.Y+sel.H)
	)
	dash := []float64{4, 3}
	cv.Line(tl, tr, 1, accent, dash)
	cv.Line(tr, br, 1, accent, dash)
	cv.Line(br, bl, 1, accent, dash)
	cv.Line(bl, tl, 1, accent, dash)
}

func (c *Chart) drawTooltip(cv Canvas) {
	if !c.Tooltip.Show || !c.tooltipReady || !c.hover.Ok() || c.plot == nil {
		return
	}
	str := c.plot.tooltipText(c.hover)
	if str == "" {
		return
	}
	var (
		tw, th = cv.TextSize(str, FontSize*0.85)
		pad    = 6.0
		box    = NewRect(c.hoverAt.X+12, c.hoverAt.Y-th-2*pad-8, tw+2*pad, th+2*pad)
	)
	if box.X+box.W > c.Width {
		box.X = c.hoverAt.X - box.W - 12
	}
	if box.Y < 0 {
		box.Y = c.hoverAt.Y + 16
	}
	cv.FillRoundRect(box, 4, withAlpha(c.theme.Color("tooltip"), 230))
	cv.StrokeRect(box, 1, c.theme.Color("border"))
	cv.Text(str, NewPos(box.X+pad, box.Y+pad+th-FontSize*0.25), FontSize*0.85, c.theme.Color("text"), AlignLeft)
}

// Export renders the chart into the given canvas with the animation
// forced to its terminal state, then restores the previous clock.
func (c *Chart) Export(cv Canvas) {
	var (
		saved = c.anim
		state = c.state
	)
	c.anim.Finish()
	c.Draw(cv)
	c.anim = saved
	c.state = state
}

func (c *Chart) animValue(from, to float64) float64 {
	return Lerp(from, to, c.anim.Eased())
}

func (c *Chart) animPos(from, to Pos) Pos {
	return LerpPos(from, to, c.anim.Eased())
}

func (c *Chart) animColor(from, to color.NRGBA) color.NRGBA {
	return LerpColor(from, to, c.anim.Eased())
}

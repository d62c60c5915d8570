package win

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/midbel/sketch"
)

const doubleClickWindow = 400 * time.Millisecond

type Options struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window showing the given charts, one at a time, and
// drives them at 60 ticks per second. Tab cycles through the charts.
// It blocks until the window closes.
func Run(opt Options, charts ...sketch.Widget) error {
	if opt.Width <= 0 {
		opt.Width = 900
	}
	if opt.Height <= 0 {
		opt.Height = 600
	}
	if opt.Title == "" {
		opt.Title = "sketch"
	}
	ebiten.SetWindowTitle(opt.Title)
	ebiten.SetWindowSize(opt.Width, opt.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	g := &host{
		charts: charts,
	}
	return ebiten.RunGame(g)
}

// backgroundCache is the optional fast path: charts exposing the
// background generation token get their background rendered once into
// an offscreen image and blitted until the token moves.
type backgroundCache interface {
	BackgroundGen() uint64
	DrawBackground(sketch.Canvas)
	DrawOver(sketch.Canvas)
}

type host struct {
	charts []sketch.Widget
	active int

	w, h   int
	cursor sketch.Pos

	lastLeft time.Time

	bg    *ebiten.Image
	bgGen uint64
	bgFor int
}

func (g *host) Update() error {
	if len(g.charts) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.active = (g.active + 1) % len(g.charts)
	}
	var (
		chart  = g.charts[g.active]
		cx, cy = ebiten.CursorPosition()
		pos    = sketch.NewPos(float64(cx), float64(cy))
	)
	if pos != g.cursor {
		chart.Move(pos)
		g.cursor = pos
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		now := time.Now()
		if now.Sub(g.lastLeft) <= doubleClickWindow {
			chart.DoubleClick(pos)
		} else {
			chart.Press(pos, sketch.ButtonLeft)
		}
		g.lastLeft = now
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		chart.Press(pos, sketch.ButtonRight)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		chart.Release(pos)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		chart.Wheel(wy)
	}
	chart.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *host) Draw(screen *ebiten.Image) {
	if len(g.charts) == 0 {
		return
	}
	var (
		chart = g.charts[g.active]
		b     = screen.Bounds()
	)
	if b.Dx() != g.w || b.Dy() != g.h {
		g.w, g.h = b.Dx(), b.Dy()
		chart.Resize(float64(g.w), float64(g.h))
	}
	if bc, ok := chart.(backgroundCache); ok {
		g.drawCached(screen, chart, bc)
		return
	}
	chart.Draw(NewCanvas(screen))
}

func (g *host) drawCached(screen *ebiten.Image, chart sketch.Widget, bc backgroundCache) {
	var (
		b    = screen.Bounds()
		gen  = bc.BackgroundGen()
		good = g.bg != nil && g.bgGen == gen && g.bgFor == g.active
	)
	if good {
		bb := g.bg.Bounds()
		good = bb.Dx() == b.Dx() && bb.Dy() == b.Dy()
	}
	if !good {
		if g.bg != nil {
			g.bg.Deallocate()
		}
		g.bg = ebiten.NewImage(b.Dx(), b.Dy())
		bc.DrawBackground(NewCanvas(g.bg))
		g.bgGen = gen
		g.bgFor = g.active
	}
	screen.DrawImage(g.bg, nil)
	bc.DrawOver(NewCanvas(screen))
}

func (g *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

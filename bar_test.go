package sketch

import (
	"math"
	"testing"
	"time"
)

func TestStackTop(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("jan", "a", 10)
	c.SetValue("jan", "b", 20)
	c.SetValue("jan", "c", 5)
	if got := c.StackTop("jan", 0); got != 10 {
		t.Errorf("top after first serie %f", got)
	}
	if got := c.StackTop("jan", 1); got != 30 {
		t.Errorf("top after second serie %f", got)
	}
	if got := c.StackTop("jan", 2); got != 35 {
		t.Errorf("total %f", got)
	}
}

func TestStackedRangeCoversTotals(t *testing.T) {
	c := NewBarChart(Dark())
	c.Mode = BarStacked
	c.SetValue("jan", "a", 10)
	c.SetValue("jan", "b", 20)
	c.SetValue("feb", "a", 40)
	c.SetValue("feb", "b", 15)
	if c.Y.Max < 55 {
		t.Errorf("stacked axis max %f, want at least 55", c.Y.Max)
	}
}

func TestBarGrowthConverges(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("a", "s", 100)
	var moved bool
	for i := 0; i < 500; i++ {
		if !c.tick(16 * time.Millisecond) {
			break
		}
		moved = true
	}
	if !moved {
		t.Fatal("bar never moved")
	}
	shown := c.shownValue("a", "s")
	if math.Abs(shown-100) > growthEpsilon {
		t.Errorf("shown %f never reached target", shown)
	}
	if c.tick(16 * time.Millisecond) {
		t.Error("settled chart keeps reporting motion")
	}
}

func TestBarGrowthMonotonic(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("a", "s", 50)
	prev := 0.0
	for i := 0; i < 100 && c.tick(16*time.Millisecond); i++ {
		cur := c.shownValue("a", "s")
		if cur < prev {
			t.Fatalf("shown value went backwards: %f -> %f", prev, cur)
		}
		if cur > 50 {
			t.Fatalf("shown value overshot: %f", cur)
		}
		prev = cur
	}
}

func TestBarRetarget(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("a", "s", 100)
	for i := 0; i < 500 && c.tick(16*time.Millisecond); i++ {
	}
	// lowering the target glides back down from the settled value
	c.SetValue("a", "s", 40)
	c.tick(16 * time.Millisecond)
	got := c.shownValue("a", "s")
	if got >= 100 || got <= 40 {
		t.Errorf("retarget step landed at %f", got)
	}
}

func TestBarNoAnimateSnaps(t *testing.T) {
	c := NewBarChart(Dark())
	c.Effects.Animate = false
	c.SetValue("a", "s", 42)
	if got := c.shownValue("a", "s"); got != 42 {
		t.Errorf("shown %f, want immediate 42", got)
	}
}

func TestBarOrderIsFirstMention(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("feb", "x", 1)
	c.SetValue("jan", "x", 2)
	c.SetValue("feb", "y", 3)
	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "feb" || cats[1] != "jan" {
		t.Errorf("categories %v", cats)
	}
	names := c.Series()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("series %v", names)
	}
}

func TestWaterfallRange(t *testing.T) {
	c := NewBarChart(Dark())
	c.Mode = BarWaterfall
	c.SetValue("start", "v", 10)
	c.SetValue("dip", "v", -4)
	c.SetValue("rise", "v", 6)
	// running totals are 10, 6, 12
	if c.Y.Max < 12 {
		t.Errorf("waterfall max %f", c.Y.Max)
	}
	if c.Y.Min > 0 {
		t.Errorf("waterfall min %f", c.Y.Min)
	}
}

func TestBaseValue(t *testing.T) {
	c := NewBarChart(Dark())
	c.Y.Min, c.Y.Max = -10, 10
	if got := c.baseValue(); got != 0 {
		t.Errorf("straddling base %f", got)
	}
	c.Y.Min, c.Y.Max = 5, 20
	if got := c.baseValue(); got != 5 {
		t.Errorf("positive range base %f", got)
	}
	c.Y.Min, c.Y.Max = -20, -5
	if got := c.baseValue(); got != -5 {
		t.Errorf("negative range base %f", got)
	}
}

func TestBarNearest(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("a", "s", 1)
	c.rects = []barRect{
		{rect: NewRect(10, 10, 20, 50), cat: 0, serie: 0},
		{rect: NewRect(40, 30, 20, 30), cat: 1, serie: 0},
	}
	if got := c.nearest(Pos{50, 40}); got != (Hit{Serie: 0, Point: 1}) {
		t.Errorf("hit %v", got)
	}
	if got := c.nearest(Pos{5, 5}); got != NoHit {
		t.Errorf("miss %v", got)
	}
}

func TestBarClickedCallback(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("jan", "api", 5)
	c.SetValue("feb", "api", 7)
	var gotCat, gotSerie string
	c.OnBarClicked = func(cat, serie string) { gotCat, gotSerie = cat, serie }
	c.rects = []barRect{{rect: NewRect(0, 0, 10, 10), cat: 1, serie: 0}}
	c.Press(Pos{5, 5}, ButtonLeft)
	c.Release(Pos{5, 5})
	if gotCat != "feb" || gotSerie != "api" {
		t.Errorf("clicked %q/%q", gotCat, gotSerie)
	}
}

func TestBarTooltip(t *testing.T) {
	c := NewBarChart(Dark())
	c.SetValue("jan", "api", 12.5)
	if got := c.tooltipText(Hit{Serie: 0, Point: 0}); got != "jan: 12.5" {
		t.Errorf("single serie tooltip %q", got)
	}
	c.SetValue("jan", "web", 3)
	if got := c.tooltipText(Hit{Serie: 1, Point: 0}); got != "jan / web: 3" {
		t.Errorf("multi serie tooltip %q", got)
	}
}

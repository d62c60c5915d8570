package sketch

import (
	"math"
	"testing"
	"time"
)

func TestEasingEndpoints(t *testing.T) {
	all := []Easing{Linear, EaseIn, EaseOut, EaseInOut, Bounce, Elastic, Back}
	for _, e := range all {
		if got := e.Apply(0); got != 0 {
			t.Errorf("easing %d at 0: %f", e, got)
		}
		if got := e.Apply(1); got != 1 {
			t.Errorf("easing %d at 1: %f", e, got)
		}
		if got := e.Apply(-0.5); got != 0 {
			t.Errorf("easing %d below range: %f", e, got)
		}
		if got := e.Apply(1.5); got != 1 {
			t.Errorf("easing %d above range: %f", e, got)
		}
	}
}

func TestEasingShapes(t *testing.T) {
	if got := EaseOut.Apply(0.5); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("ease out midpoint %f, want 0.75", got)
	}
	if got := EaseIn.Apply(0.5); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("ease in midpoint %f, want 0.25", got)
	}
	if got := EaseInOut.Apply(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ease in out midpoint %f, want 0.5", got)
	}
	// first bounce peak region
	if got := Bounce.Apply(0.2); math.Abs(got-7.5625*0.04) > 1e-9 {
		t.Errorf("bounce at 0.2: %f", got)
	}
	// back overshoots below zero early on
	if got := Back.Apply(0.1); got >= 0 {
		t.Errorf("back at 0.1 should undershoot, got %f", got)
	}
}

func TestAnimationStep(t *testing.T) {
	var a Animation
	a.Start(100 * time.Millisecond)
	if !a.Running || a.Progress != 0 {
		t.Fatalf("start: running=%v progress=%f", a.Running, a.Progress)
	}
	var (
		prev     float64
		finished int
	)
	for i := 0; i < 20; i++ {
		done := a.Step(16 * time.Millisecond)
		if a.Progress < prev {
			t.Fatalf("progress went backwards: %f -> %f", prev, a.Progress)
		}
		if a.Progress > 1 {
			t.Fatalf("progress overshot: %f", a.Progress)
		}
		prev = a.Progress
		if done {
			finished++
		}
	}
	if finished != 1 {
		t.Errorf("finished %d times, want once", finished)
	}
	if a.Running || a.Progress != 1 {
		t.Errorf("after run: running=%v progress=%f", a.Running, a.Progress)
	}
}

func TestAnimationStopKeepsProgress(t *testing.T) {
	var a Animation
	a.Start(100 * time.Millisecond)
	a.Step(50 * time.Millisecond)
	p := a.Progress
	a.Stop()
	if a.Running {
		t.Error("still running after stop")
	}
	if a.Progress != p {
		t.Errorf("stop changed progress: %f -> %f", p, a.Progress)
	}
	if a.Step(16 * time.Millisecond) {
		t.Error("step on stopped animation reported finish")
	}
}

func TestAnimationFinish(t *testing.T) {
	var a Animation
	a.Start(time.Second)
	a.Finish()
	if a.Running || a.Progress != 1 {
		t.Errorf("finish: running=%v progress=%f", a.Running, a.Progress)
	}
}

func TestAnimationDefaultDuration(t *testing.T) {
	var a Animation
	a.Start(0)
	if a.Duration != DefaultDuration {
		t.Errorf("duration %v, want %v", a.Duration, DefaultDuration)
	}
}

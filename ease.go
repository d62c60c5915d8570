package sketch

import (
	"math"
	"time"
)

type Easing int

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	Bounce
	Elastic
	Back
)

// Apply remaps linear progress in [0,1] onto the easing curve. Every
// curve maps 0 to 0 and 1 to 1.
func (e Easing) Apply(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	switch e {
	case EaseIn:
		return p * p
	case EaseOut:
		return 1 - (1-p)*(1-p)
	case EaseInOut:
		if p < 0.5 {
			return 2 * p * p
		}
		return 1 - 2*(1-p)*(1-p)
	case Bounce:
		return bounce(p)
	case Elastic:
		return -math.Pow(2, 10*(p-1)) * math.Sin((p-1.075)*2*math.Pi/0.3)
	case Back:
		const (
			c1 = 1.70158
			c3 = c1 + 1
		)
		q := p - 1
		return 1 + c3*q*q*q + c1*q*q
	default:
		return p
	}
}

func bounce(p float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case p < 1/d1:
		return n1 * p * p
	case p < 2/d1:
		p -= 1.5 / d1
		return n1*p*p + 0.75
	case p < 2.5/d1:
		p -= 2.25 / d1
		return n1*p*p + 0.9375
	default:
		p -= 2.625 / d1
		return n1*p*p + 0.984375
	}
}

const (
	DefaultDuration = 800 * time.Millisecond
	FrameInterval   = 16 * time.Millisecond
)

// Animation is a tick driven interpolation record. The owning chart
// advances it once per frame; when progress reaches 1 the animation
// stops by itself.
type Animation struct {
	Progress float64
	Duration time.Duration
	Elapsed  time.Duration
	Easing   Easing
	Running  bool
}

func (a *Animation) Start(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	a.Duration = d
	a.Elapsed = 0
	a.Progress = 0
	a.Running = true
}

// Step advances the clock and reports whether the animation finished
// on this tick.
func (a *Animation) Step(dt time.Duration) bool {
	if !a.Running {
		return false
	}
	a.Elapsed += dt
	p := float64(a.Elapsed) / float64(a.Duration)
	if p < a.Progress {
		p = a.Progress
	}
	if p >= 1 {
		a.Progress = 1
		a.Running = false
		return true
	}
	a.Progress = p
	return false
}

// Stop halts the clock where it is; progress keeps its last value.
func (a *Animation) Stop() {
	a.Running = false
}

// Finish forces the terminal state, used before exporting.
func (a *Animation) Finish() {
	a.Progress = 1
	a.Elapsed = a.Duration
	a.Running = false
}

func (a *Animation) Eased() float64 {
	return a.Easing.Apply(a.Progress)
}

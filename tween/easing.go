// Package tween animates scalar values over time with easing curves.
package tween

import "github.com/chewxy/math32"

// Ease remaps normalised time p in [0, 1] to animation progress.
type Ease func(p float32) float32

// Linear is the identity ease.
func Linear(p float32) float32 { return p }

// ElasticOut returns a decaying sinusoidal ease that overshoots the target
// and settles on it. amplitude below 1 is treated as 1; period is the length
// of one oscillation in normalised time.
func ElasticOut(amplitude, period float32) Ease {
	a := amplitude
	if a < 1 {
		a = 1
	}
	p := period
	if amplitude < 1 {
		p /= amplitude
	}
	shift := p / (2 * math32.Pi) * math32.Asin(1/a)
	freq := 2 * math32.Pi / p

	return func(t float32) float32 {
		if t >= 1 {
			return 1
		}
		if t <= 0 {
			return 0
		}
		return a*math32.Pow(2, -10*t)*math32.Sin((t-shift)*freq) + 1
	}
}

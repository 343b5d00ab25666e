package tween

import "time"

// Value is a scalar animated toward a target. Starting a new animation
// replaces the one in flight, beginning from the value sampled at that moment.
type Value struct {
	from     float32
	to       float32
	start    time.Duration
	duration time.Duration
	ease     Ease
}

// NewValue returns a Value resting at v.
func NewValue(v float32) Value {
	return Value{from: v, to: v}
}

// To animates toward target over d, starting at now.
func (v *Value) To(target float32, d time.Duration, ease Ease, now time.Duration) {
	if ease == nil {
		ease = Linear
	}
	v.from = v.At(now)
	v.to = target
	v.start = now
	v.duration = d
	v.ease = ease
}

// Set jumps to x and cancels any animation.
func (v *Value) Set(x float32) {
	*v = NewValue(x)
}

// At samples the value at now.
func (v *Value) At(now time.Duration) float32 {
	if v.duration <= 0 || now >= v.start+v.duration {
		return v.to
	}
	if now <= v.start {
		return v.from
	}
	p := float32(now-v.start) / float32(v.duration)
	return v.from + (v.to-v.from)*v.ease(p)
}

// Target returns the value the animation settles on.
func (v *Value) Target() float32 { return v.to }

// Active reports whether an animation is still running at now.
func (v *Value) Active(now time.Duration) bool {
	return v.duration > 0 && now < v.start+v.duration
}

// Duration returns the length of the current or last animation.
func (v *Value) Duration() time.Duration { return v.duration }

package app

import "time"

// LoadingBar tracks asset loading progress for the overlay.
type LoadingBar struct {
	progress    float64
	completedAt time.Duration
	complete    bool
	hold        time.Duration
}

// NewLoadingBar returns an empty bar that stays visible for hold after
// reaching 1.
func NewLoadingBar(hold time.Duration) *LoadingBar {
	return &LoadingBar{hold: hold}
}

// Set raises progress to p, clamped to [0, 1]. Lower values are ignored.
func (b *LoadingBar) Set(p float64, now time.Duration) {
	if p > 1 {
		p = 1
	}
	if p <= b.progress {
		return
	}
	b.progress = p
	if p == 1 && !b.complete {
		b.complete = true
		b.completedAt = now
	}
}

// Progress returns the current fraction.
func (b *LoadingBar) Progress() float64 { return b.progress }

// Complete reports whether progress reached 1.
func (b *LoadingBar) Complete() bool { return b.complete }

// Visible reports whether the bar should still be drawn.
func (b *LoadingBar) Visible(now time.Duration) bool {
	return !b.complete || now-b.completedAt < b.hold
}

// Package telemetry tracks frame timing for the stats panel, window title
// and optional CSV output.
package telemetry

import (
	"time"
)

// FrameStats keeps the most recent frame durations in a ring buffer.
type FrameStats struct {
	windowSize  int
	samples     []time.Duration
	writeIndex  int
	sampleCount int
	frames      int64 // total frames recorded
}

// NewFrameStats creates a collector averaging over windowSize frames.
func NewFrameStats(windowSize int) *FrameStats {
	if windowSize < 1 {
		windowSize = 120
	}
	return &FrameStats{
		windowSize: windowSize,
		samples:    make([]time.Duration, windowSize),
	}
}

// Record adds one frame duration. Non-positive durations are ignored.
func (s *FrameStats) Record(d time.Duration) {
	if d <= 0 {
		return
	}
	s.samples[s.writeIndex] = d
	s.writeIndex = (s.writeIndex + 1) % s.windowSize
	if s.sampleCount < s.windowSize {
		s.sampleCount++
	}
	s.frames++
}

// Frames returns the total number of frames recorded.
func (s *FrameStats) Frames() int64 { return s.frames }

// Len returns the number of frames currently in the window.
func (s *FrameStats) Len() int { return s.sampleCount }

// Capacity returns the window size.
func (s *FrameStats) Capacity() int { return s.windowSize }

// Avg returns the mean frame duration over the window.
func (s *FrameStats) Avg() time.Duration {
	if s.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s.History() {
		total += d
	}
	return total / time.Duration(s.sampleCount)
}

// Max returns the longest frame in the window.
func (s *FrameStats) Max() time.Duration {
	var max time.Duration
	for _, d := range s.History() {
		if d > max {
			max = d
		}
	}
	return max
}

// FPS returns frames per second from the window average.
func (s *FrameStats) FPS() float64 {
	avg := s.Avg()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// MinMaxFPS returns the slowest and fastest instantaneous frame rates in the
// window.
func (s *FrameStats) MinMaxFPS() (min, max float64) {
	for i, d := range s.History() {
		fps := float64(time.Second) / float64(d)
		if i == 0 || fps < min {
			min = fps
		}
		if fps > max {
			max = fps
		}
	}
	return min, max
}

// History returns the window samples oldest first.
func (s *FrameStats) History() []time.Duration {
	out := make([]time.Duration, 0, s.sampleCount)
	start := s.writeIndex - s.sampleCount
	if start < 0 {
		start += s.windowSize
	}
	for i := 0; i < s.sampleCount; i++ {
		out = append(out, s.samples[(start+i)%s.windowSize])
	}
	return out
}

// Ticker fires once per interval of accumulated frame time. It drives the
// window title refresh and CSV sampling.
type Ticker struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewTicker creates a ticker for the given interval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval}
}

// Advance adds dt and reports whether an interval boundary was crossed.
func (t *Ticker) Advance(dt time.Duration) bool {
	t.elapsed += dt
	if t.elapsed < t.interval {
		return false
	}
	t.elapsed %= t.interval
	return true
}

package app

import (
	"time"

	"particle-field/core"
)

// rect is an overlay rectangle in window units, origin top-left.
type rect struct {
	X, Y, W, H float32
	Color      core.Color
}

// Overlay colours, after the usual stats.js FPS panel.
var (
	panelBackground = core.Color{R: 0, G: 0, B: 0.13, A: 0.9}
	panelForeground = core.Color{R: 0, G: 1, B: 1, A: 1}
	panelGraph      = core.Color{R: 0, G: 0.07, B: 0.13, A: 1}
	panelSlow       = core.ColorRed
	barTrack        = core.ColorWhite.WithAlpha(0.15)
	barFill         = core.ColorWhite.WithAlpha(0.85)
)

const (
	panelW, panelH = 80, 48
	graphX, graphY = 3, 15
	graphW, graphH = 74, 30

	barHeight = 4
	barMargin = 24
)

// loadingBarRects lays out a bottom-centred progress bar spanning 40% of
// the window width.
func loadingBarRects(progress float64, winW, winH float32) []rect {
	w := winW * 0.4
	x := (winW - w) / 2
	y := winH - barMargin - barHeight
	return []rect{
		{X: x, Y: y, W: w, H: barHeight, Color: barTrack},
		{X: x, Y: y, W: w * float32(progress), H: barHeight, Color: barFill},
	}
}

// statsPanelRects lays out an FPS panel at (x, y). The strip above the graph
// shows the current rate; the graph holds one column per recent frame,
// newest on the right, scaled to the fastest frame in the window. Slow
// frames shade toward red.
func statsPanelRects(history []time.Duration, fps, maxFPS float64, x, y float32) []rect {
	rects := []rect{
		{X: x, Y: y, W: panelW, H: panelH, Color: panelBackground},
		{X: x + graphX, Y: y + graphY, W: graphW, H: graphH, Color: panelGraph},
	}
	if maxFPS <= 0 {
		return rects
	}

	rects = append(rects, rect{
		X: x + graphX, Y: y + 5, W: graphW * float32(clamp01(fps/maxFPS)), H: 6,
		Color: panelForeground,
	})

	if len(history) > graphW {
		history = history[len(history)-graphW:]
	}
	left := x + graphX + graphW - float32(len(history))
	for i, d := range history {
		f := float64(time.Second) / float64(d)
		ratio := float32(clamp01(f / maxFPS))
		h := graphH * ratio
		rects = append(rects, rect{
			X: left + float32(i), Y: y + graphY + graphH - h, W: 1, H: h,
			Color: panelSlow.Lerp(panelForeground, ratio),
		})
	}
	return rects
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

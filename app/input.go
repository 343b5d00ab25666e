package app

import (
	"time"

	"go.uber.org/zap"

	"particle-field/core"
	"particle-field/interaction"
)

// InputBinding forwards window events to the interaction state. All
// callbacks run on the render thread inside PollEvents.
type InputBinding struct {
	window *core.Window
	state  *interaction.State
	picker interaction.Picker
	clock  func() time.Duration
	log    *zap.Logger

	pixelsPerLine float32
	missing       bool // last pointer move missed the picking plane
}

// BindInput registers the press, release, wheel and pointer handlers.
// pixelsPerLine converts scroll lines into wheel delta units.
func BindInput(window *core.Window, state *interaction.State, picker interaction.Picker,
	clock func() time.Duration, pixelsPerLine float32, log *zap.Logger,
) *InputBinding {
	ib := &InputBinding{
		window:        window,
		state:         state,
		picker:        picker,
		clock:         clock,
		log:           log,
		pixelsPerLine: pixelsPerLine,
	}

	window.SetMouseButtonCallback(func(button int, pressed bool) {
		if pressed {
			ib.state.PointerDown(ib.clock())
		} else {
			ib.state.PointerUp(ib.clock())
		}
	})

	window.SetScrollCallback(func(xoff, yoff float64) {
		ib.Scroll(yoff)
	})

	window.SetCursorPosCallback(func(x, y float64) {
		ib.Move(x, y, window.Width, window.Height)
	})

	return ib
}

// Scroll applies a scroll offset in lines, positive away from the user.
func (ib *InputBinding) Scroll(yoff float64) {
	ib.state.Wheel(float32(yoff) * ib.pixelsPerLine)
}

// Move applies a cursor position in window units.
func (ib *InputBinding) Move(x, y float64, width, height int) {
	hit := ib.state.PointerMove(float32(x), float32(y), float32(width), float32(height), ib.picker)
	if !hit && !ib.missing {
		ib.log.Debug("pointer outside picking plane",
			zap.Float64("x", x), zap.Float64("y", y),
			zap.Int("misses", ib.state.Misses))
	}
	ib.missing = !hit
}

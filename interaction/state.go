// Package interaction holds the pointer and wheel state that drives the
// particle shader, along with the transitions applied by input events.
package interaction

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"particle-field/scene"
	"particle-field/tween"
)

// Picker resolves a pointer position in normalized device coordinates to a
// point on the picking surface.
type Picker interface {
	Pick(ndc mgl32.Vec2) (scene.HitResult, bool)
}

// PlanePicker casts camera rays against a bounded plane.
type PlanePicker struct {
	Camera *scene.Camera
	Plane  scene.Plane
}

func (p PlanePicker) Pick(ndc mgl32.Vec2) (scene.HitResult, bool) {
	return p.Plane.Intersect(scene.NDCToRay(ndc, p.Camera))
}

// PressOptions configures the press indicator animation.
type PressOptions struct {
	Duration time.Duration
	Ease     tween.Ease
}

// DefaultPressOptions animates over one second with an elastic settle.
func DefaultPressOptions() PressOptions {
	return PressOptions{
		Duration: time.Second,
		Ease:     tween.ElasticOut(1, 0.3),
	}
}

// State is the mutable interaction state. It is owned by the render thread
// and needs no locking.
type State struct {
	Move    float32     // cumulative wheel delta, unbounded
	Point   mgl32.Vec2  // last picking hit in world units
	Mouse   mgl32.Vec2  // last pointer position in NDC
	Pressed tween.Value // animated 0..1

	Misses int // pointer moves that did not hit the picking surface

	press        PressOptions
	wheelDivisor float32
}

// NewState returns a resting state: move 0, point (0, 0), not pressed.
// A zero wheelDivisor falls back to 100.
func NewState(press PressOptions, wheelDivisor float32) *State {
	if wheelDivisor == 0 {
		wheelDivisor = 100
	}
	return &State{
		Pressed:      tween.NewValue(0),
		press:        press,
		wheelDivisor: wheelDivisor,
	}
}

// PointerDown starts animating the press indicator toward 1.
func (s *State) PointerDown(now time.Duration) {
	s.Pressed.To(1, s.press.Duration, s.press.Ease, now)
}

// PointerUp starts animating the press indicator toward 0.
func (s *State) PointerUp(now time.Duration) {
	s.Pressed.To(0, s.press.Duration, s.press.Ease, now)
}

// Wheel accumulates a wheel delta. Positive deltaY is a scroll up.
func (s *State) Wheel(deltaY float32) {
	s.Move += deltaY / s.wheelDivisor
}

// PointerMove projects a window-space pointer position onto the picking
// surface. On a miss Point keeps its previous value and false is returned.
func (s *State) PointerMove(x, y, width, height float32, picker Picker) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	s.Mouse = scene.ScreenToNDC(x, y, width, height)

	hit, ok := picker.Pick(s.Mouse)
	if !ok {
		s.Misses++
		return false
	}
	s.Point = mgl32.Vec2{hit.Point.X(), hit.Point.Y()}
	return true
}

// Uniforms is the per-frame snapshot copied into the shader.
type Uniforms struct {
	Move         float32
	Mouse        mgl32.Vec2 // picking hit, not NDC
	MousePressed float32
	Time         float32 // seconds
}

// Frame samples the state at the given time.
func (s *State) Frame(now time.Duration) Uniforms {
	return Uniforms{
		Move:         s.Move,
		Mouse:        s.Point,
		MousePressed: s.Pressed.At(now),
		Time:         float32(now.Seconds()),
	}
}

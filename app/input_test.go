package app

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"particle-field/interaction"
	"particle-field/scene"
)

type stubPicker struct {
	point mgl32.Vec3
	ok    bool
}

func (p stubPicker) Pick(mgl32.Vec2) (scene.HitResult, bool) {
	return scene.HitResult{Point: p.point}, p.ok
}

func newTestBinding(picker interaction.Picker) *InputBinding {
	return &InputBinding{
		state:         interaction.NewState(interaction.DefaultPressOptions(), 100),
		picker:        picker,
		clock:         func() time.Duration { return 0 },
		log:           zap.NewNop(),
		pixelsPerLine: 120,
	}
}

func TestScrollConvertsLines(t *testing.T) {
	ib := newTestBinding(stubPicker{})

	ib.Scroll(1)
	if got := ib.state.Move; math.Abs(float64(got-1.2)) > 1e-6 {
		t.Errorf("Scroll(1): expected move 1.2, got %v", got)
	}
	ib.Scroll(-2)
	if got := ib.state.Move; math.Abs(float64(got+1.2)) > 1e-6 {
		t.Errorf("Scroll(-2): expected move -1.2, got %v", got)
	}
}

func TestMoveTracksMissStreak(t *testing.T) {
	ib := newTestBinding(stubPicker{point: mgl32.Vec3{10, 20, 0}, ok: true})
	ib.Move(400, 300, 800, 600)
	if ib.missing {
		t.Error("Move: expected hit to clear the miss streak")
	}
	if ib.state.Point != (mgl32.Vec2{10, 20}) {
		t.Errorf("Move: expected point (10, 20), got %v", ib.state.Point)
	}

	ib.picker = stubPicker{}
	ib.Move(0, 0, 800, 600)
	ib.Move(1, 1, 800, 600)
	if !ib.missing {
		t.Error("Move: expected miss streak after misses")
	}
	if ib.state.Misses != 2 {
		t.Errorf("Misses: expected 2, got %d", ib.state.Misses)
	}
	if ib.state.Point != (mgl32.Vec2{10, 20}) {
		t.Errorf("Move: expected point kept at (10, 20), got %v", ib.state.Point)
	}
}

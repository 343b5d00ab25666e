package scene

import (
	"math/rand"
	"testing"
)

func TestPointFieldLayout(t *testing.T) {
	f := NewPointField(4, DefaultFieldOptions(), rand.New(rand.NewSource(1)))

	if f.Count() != 16 {
		t.Fatalf("Count: expected 16, got %d", f.Count())
	}
	if len(f.Positions) != 48 || len(f.Coordinates) != 48 {
		t.Errorf("vec3 arrays: expected 48, got %d/%d", len(f.Positions), len(f.Coordinates))
	}
	for _, a := range [][]float32{f.Speeds, f.Offsets, f.Directions, f.Presses} {
		if len(a) != 16 {
			t.Errorf("scalar array: expected 16, got %d", len(a))
		}
	}

	// Particle (i=1, j=3) lives at index 1*4+3 = 7
	k := 7
	if f.Positions[3*k] != (1-2)*2 || f.Positions[3*k+1] != (3-2)*2 || f.Positions[3*k+2] != 0 {
		t.Errorf("position[7]: expected (-2, 2, 0), got %v", f.Positions[3*k:3*k+3])
	}
	if f.Coordinates[3*k] != 1 || f.Coordinates[3*k+1] != 3 || f.Coordinates[3*k+2] != 0 {
		t.Errorf("coordinates[7]: expected (1, 3, 0), got %v", f.Coordinates[3*k:3*k+3])
	}
}

func TestPointFieldCorners(t *testing.T) {
	f := NewPointField(512, DefaultFieldOptions(), rand.New(rand.NewSource(2)))

	if f.Count() != 262144 {
		t.Fatalf("Count: expected 262144, got %d", f.Count())
	}
	if f.Positions[0] != -512 || f.Positions[1] != -512 {
		t.Errorf("first position: expected (-512, -512), got (%v, %v)", f.Positions[0], f.Positions[1])
	}
	last := 3 * (f.Count() - 1)
	if f.Positions[last] != 510 || f.Positions[last+1] != 510 {
		t.Errorf("last position: expected (510, 510), got (%v, %v)", f.Positions[last], f.Positions[last+1])
	}
	if f.Coordinates[last] != 511 || f.Coordinates[last+1] != 511 {
		t.Errorf("last coordinates: expected (511, 511), got (%v, %v)", f.Coordinates[last], f.Coordinates[last+1])
	}
}

func TestPointFieldRanges(t *testing.T) {
	f := NewPointField(64, DefaultFieldOptions(), rand.New(rand.NewSource(3)))

	for k := 0; k < f.Count(); k++ {
		if s := f.Speeds[k]; s < 0.4 || s >= 1 {
			t.Fatalf("speed[%d]: expected [0.4, 1), got %v", k, s)
		}
		if o := f.Offsets[k]; o < -1000 || o >= 1000 {
			t.Fatalf("offset[%d]: expected [-1000, 1000), got %v", k, o)
		}
		if p := f.Presses[k]; p < 1 || p >= 3 {
			t.Fatalf("press[%d]: expected [1, 3), got %v", k, p)
		}
		if d := f.Directions[k]; d != 1 && d != -1 {
			t.Fatalf("direction[%d]: expected ±1, got %v", k, d)
		}
	}
}

func TestPointFieldDeterministic(t *testing.T) {
	a := NewPointField(32, DefaultFieldOptions(), rand.New(rand.NewSource(42)))
	b := NewPointField(32, DefaultFieldOptions(), rand.New(rand.NewSource(42)))

	for _, pair := range [][2][]float32{
		{a.Speeds, b.Speeds}, {a.Offsets, b.Offsets},
		{a.Directions, b.Directions}, {a.Presses, b.Presses},
	} {
		for i := range pair[0] {
			if pair[0][i] != pair[1][i] {
				t.Fatalf("index %d: expected identical fields, got %v and %v", i, pair[0][i], pair[1][i])
			}
		}
	}
}

func TestPointFieldEmpty(t *testing.T) {
	f := NewPointField(0, DefaultFieldOptions(), rand.New(rand.NewSource(1)))
	if f.Count() != 0 || len(f.Positions) != 0 {
		t.Errorf("empty field: expected no particles, got %d", f.Count())
	}
	if s := f.Summarize(); s.Count != 0 {
		t.Errorf("Summarize: expected zero count, got %d", s.Count)
	}

	f = NewPointField(-3, DefaultFieldOptions(), rand.New(rand.NewSource(1)))
	if f.Count() != 0 {
		t.Errorf("negative size: expected 0 particles, got %d", f.Count())
	}
}

func TestAttributesTable(t *testing.T) {
	f := NewPointField(8, DefaultFieldOptions(), rand.New(rand.NewSource(1)))
	attrs := f.Attributes()

	want := []struct {
		name       string
		components int
	}{
		{"position", 3}, {"aCoordinates", 3}, {"aSpeed", 1},
		{"aOffset", 1}, {"aDirection", 1}, {"aPress", 1},
	}
	if len(attrs) != len(want) {
		t.Fatalf("Attributes: expected %d entries, got %d", len(want), len(attrs))
	}
	for i, w := range want {
		a := attrs[i]
		if a.Name != w.name || a.Components != w.components || a.Location != uint32(i) {
			t.Errorf("attribute %d: expected %s/%d@%d, got %s/%d@%d",
				i, w.name, w.components, i, a.Name, a.Components, a.Location)
		}
		if len(a.Data) != f.Count()*a.Components {
			t.Errorf("attribute %s: expected %d floats, got %d", a.Name, f.Count()*a.Components, len(a.Data))
		}
	}
}

func TestSummarize(t *testing.T) {
	f := NewPointField(128, DefaultFieldOptions(), rand.New(rand.NewSource(7)))
	s := f.Summarize()

	if s.Count != 128*128 {
		t.Errorf("Count: expected %d, got %d", 128*128, s.Count)
	}
	if s.Speed.Min < 0.4 || s.Speed.Max >= 1 {
		t.Errorf("speed range: expected within [0.4, 1), got [%v, %v]", s.Speed.Min, s.Speed.Max)
	}
	if s.Speed.Mean < 0.65 || s.Speed.Mean > 0.75 {
		t.Errorf("speed mean: expected ~0.7, got %v", s.Speed.Mean)
	}
	if s.Press.Mean < 1.9 || s.Press.Mean > 2.1 {
		t.Errorf("press mean: expected ~2, got %v", s.Press.Mean)
	}
	if s.PositiveShare < 0.45 || s.PositiveShare > 0.55 {
		t.Errorf("positive share: expected ~0.5, got %v", s.PositiveShare)
	}
}

func BenchmarkNewPointField(b *testing.B) {
	opts := DefaultFieldOptions()
	rng := rand.New(rand.NewSource(1))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		NewPointField(512, opts, rng)
	}
}

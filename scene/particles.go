package scene

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Shader attribute names and their vertex locations.
const (
	AttrPosition    = "position"
	AttrCoordinates = "aCoordinates"
	AttrSpeed       = "aSpeed"
	AttrOffset      = "aOffset"
	AttrDirection   = "aDirection"
	AttrPress       = "aPress"
)

// FieldOptions controls the grid layout and per-particle random ranges.
// Ranges are half-open: [Min, Max).
type FieldOptions struct {
	Spacing              float32
	SpeedMin, SpeedMax   float32
	OffsetMin, OffsetMax float32
	PressMin, PressMax   float32
}

// DefaultFieldOptions returns the stock layout: 2 units between neighbours,
// speed [0.4, 1), offset [-1000, 1000), press [1, 3).
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{
		Spacing:   2,
		SpeedMin:  0.4,
		SpeedMax:  1,
		OffsetMin: -1000,
		OffsetMax: 1000,
		PressMin:  1,
		PressMax:  3,
	}
}

// PointField is a square grid of particles stored as parallel attribute
// arrays. Particle k = i*Size + j sits at column i, row j.
// The field is not modified after construction.
type PointField struct {
	Size int

	Positions   []float32 // 3 per particle
	Coordinates []float32 // 3 per particle, grid indices (i, j, 0)
	Speeds      []float32
	Offsets     []float32
	Directions  []float32 // ±1
	Presses     []float32
}

// Attribute describes one per-vertex array of the field.
type Attribute struct {
	Name       string
	Location   uint32
	Components int
	Data       []float32
}

// NewPointField builds a size×size grid. Randomness comes only from rng, so
// the same seed yields the same field. size <= 0 yields an empty field.
func NewPointField(size int, opts FieldOptions, rng *rand.Rand) *PointField {
	if size < 0 {
		size = 0
	}
	n := size * size
	f := &PointField{
		Size:        size,
		Positions:   make([]float32, 3*n),
		Coordinates: make([]float32, 3*n),
		Speeds:      make([]float32, n),
		Offsets:     make([]float32, n),
		Directions:  make([]float32, n),
		Presses:     make([]float32, n),
	}

	half := size / 2
	k := 0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			f.Positions[3*k] = float32(i-half) * opts.Spacing
			f.Positions[3*k+1] = float32(j-half) * opts.Spacing

			f.Coordinates[3*k] = float32(i)
			f.Coordinates[3*k+1] = float32(j)

			f.Speeds[k] = randRange(rng, opts.SpeedMin, opts.SpeedMax)
			f.Offsets[k] = randRange(rng, opts.OffsetMin, opts.OffsetMax)
			if rng.Float64() > 0.5 {
				f.Directions[k] = 1
			} else {
				f.Directions[k] = -1
			}
			f.Presses[k] = randRange(rng, opts.PressMin, opts.PressMax)
			k++
		}
	}
	return f
}

func randRange(rng *rand.Rand, min, max float32) float32 {
	return min + rng.Float32()*(max-min)
}

// Count returns the number of particles.
func (f *PointField) Count() int {
	return f.Size * f.Size
}

// Attributes lists the arrays in vertex location order.
func (f *PointField) Attributes() []Attribute {
	return []Attribute{
		{Name: AttrPosition, Location: 0, Components: 3, Data: f.Positions},
		{Name: AttrCoordinates, Location: 1, Components: 3, Data: f.Coordinates},
		{Name: AttrSpeed, Location: 2, Components: 1, Data: f.Speeds},
		{Name: AttrOffset, Location: 3, Components: 1, Data: f.Offsets},
		{Name: AttrDirection, Location: 4, Components: 1, Data: f.Directions},
		{Name: AttrPress, Location: 5, Components: 1, Data: f.Presses},
	}
}

// Range is the observed spread of a scalar attribute.
type Range struct {
	Min, Max, Mean float64
}

// FieldSummary describes the distribution of the random attributes.
type FieldSummary struct {
	Count         int
	Speed         Range
	Offset        Range
	Press         Range
	PositiveShare float64 // fraction of directions equal to +1
}

// Summarize computes per-attribute statistics. An empty field yields zeros.
func (f *PointField) Summarize() FieldSummary {
	s := FieldSummary{Count: f.Count()}
	if s.Count == 0 {
		return s
	}
	s.Speed = summarize(f.Speeds)
	s.Offset = summarize(f.Offsets)
	s.Press = summarize(f.Presses)

	positive := 0
	for _, d := range f.Directions {
		if d > 0 {
			positive++
		}
	}
	s.PositiveShare = float64(positive) / float64(s.Count)
	return s
}

func summarize(data []float32) Range {
	x := make([]float64, len(data))
	for i, v := range data {
		x[i] = float64(v)
	}
	return Range{
		Min:  floats.Min(x),
		Max:  floats.Max(x),
		Mean: stat.Mean(x, nil),
	}
}

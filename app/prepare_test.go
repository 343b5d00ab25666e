package app

import (
	"context"
	"errors"
	"testing"

	"particle-field/assets"
	"particle-field/config"
	"particle-field/scene"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Field.Size = 16
	cfg.Field.Seed = 99
	return cfg
}

func stubAssets() AssetLoader {
	return func(ctx context.Context) (assets.Set, error) {
		return assets.Set{
			T1:   scene.NewSolidTexture("t1", 255, 0, 0, 255),
			T2:   scene.NewSolidTexture("t2", 0, 255, 0, 255),
			Mask: scene.NewSolidTexture("mask", 255, 255, 255, 255),
		}, nil
	}
}

func TestPrepareProgress(t *testing.T) {
	cfg := testConfig(t)
	var reported []float64

	p, err := Prepare(context.Background(), cfg, stubAssets(), func(v float64) {
		reported = append(reported, v)
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	if len(reported) != 2 || reported[0] != 0.1 || reported[1] != 1 {
		t.Errorf("progress: expected [0.1 1], got %v", reported)
	}
	if p.Field.Count() != 256 {
		t.Errorf("field: expected 256 points, got %d", p.Field.Count())
	}
	if p.Seed != 99 {
		t.Errorf("seed: expected 99, got %d", p.Seed)
	}
	if p.Textures.T1 == nil || p.Textures.Mask == nil {
		t.Error("textures: expected loader output passed through")
	}
}

func TestPrepareFailureSkipsCompletion(t *testing.T) {
	cfg := testConfig(t)
	boom := errors.New("boom")
	var reported []float64

	_, err := Prepare(context.Background(), cfg, func(ctx context.Context) (assets.Set, error) {
		return assets.Set{}, boom
	}, func(v float64) {
		reported = append(reported, v)
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
	if len(reported) != 1 || reported[0] != 0.1 {
		t.Errorf("progress: expected only [0.1], got %v", reported)
	}
}

func TestPrepareDeterministicSeed(t *testing.T) {
	cfg := testConfig(t)
	noop := func(float64) {}

	a, err := Prepare(context.Background(), cfg, stubAssets(), noop)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Prepare(context.Background(), cfg, stubAssets(), noop)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Field.Offsets {
		if a.Field.Offsets[i] != b.Field.Offsets[i] {
			t.Fatalf("offset[%d]: expected identical fields for a fixed seed", i)
		}
	}
}

func TestPrepareWithEmbeddedAssets(t *testing.T) {
	cfg := testConfig(t)
	p, err := Prepare(context.Background(), cfg, FileAssets(cfg), func(float64) {})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.Textures.T2 == nil || p.Textures.T2.Width == 0 {
		t.Error("embedded t2: expected decoded texture")
	}
}

func TestPrepareCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completed := false
	_, err := Prepare(ctx, cfg, stubAssets(), func(v float64) {
		if v == 1 {
			completed = true
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if completed {
		t.Error("progress: expected no completion after cancel")
	}
}

func TestSeedTimeBased(t *testing.T) {
	cfg := testConfig(t)
	cfg.Field.Seed = 0
	if Seed(cfg) == 0 {
		t.Error("Seed: expected non-zero time-based seed")
	}
}

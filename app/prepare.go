package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"particle-field/assets"
	"particle-field/config"
	"particle-field/scene"
)

// AssetLoader decodes the three shader textures.
type AssetLoader func(ctx context.Context) (assets.Set, error)

// FileAssets loads the configured images, falling back to the embedded ones.
func FileAssets(cfg *config.Config) AssetLoader {
	paths := assets.Paths{
		T1:   cfg.Assets.Texture1,
		T2:   cfg.Assets.Texture2,
		Mask: cfg.Assets.Mask,
	}
	return func(ctx context.Context) (assets.Set, error) {
		return assets.Load(ctx, paths)
	}
}

// Prepared is everything the render thread needs to start drawing.
type Prepared struct {
	Textures assets.Set
	Field    *scene.PointField
	Seed     int64
}

// FieldOptions converts the config ranges.
func FieldOptions(cfg *config.Config) scene.FieldOptions {
	f := cfg.Field
	return scene.FieldOptions{
		Spacing:   f.Spacing,
		SpeedMin:  f.SpeedMin,
		SpeedMax:  f.SpeedMax,
		OffsetMin: f.OffsetMin,
		OffsetMax: f.OffsetMax,
		PressMin:  f.PressMin,
		PressMax:  f.PressMax,
	}
}

// Seed returns the configured field seed, or a time-based one for 0.
func Seed(cfg *config.Config) int64 {
	if cfg.Field.Seed != 0 {
		return cfg.Field.Seed
	}
	return time.Now().UnixNano()
}

// Prepare reports the start fraction, loads textures, builds the particle
// field and reports 1. progress(1) is called exactly once and only on
// success. Prepare does not touch OpenGL.
func Prepare(ctx context.Context, cfg *config.Config, load AssetLoader, progress func(float64)) (*Prepared, error) {
	progress(cfg.Loading.Start)

	textures, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading textures: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := Seed(cfg)
	field := scene.NewPointField(cfg.Field.Size, FieldOptions(cfg), rand.New(rand.NewSource(seed)))

	progress(1)
	return &Prepared{Textures: textures, Field: field, Seed: seed}, nil
}

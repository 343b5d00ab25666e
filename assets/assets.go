// Package assets provides the images sampled by the particle shader. Each
// image is embedded in the binary and can be replaced by a file on disk.
package assets

import (
	"context"
	"embed"
	"fmt"

	"golang.org/x/sync/errgroup"

	"particle-field/scene"
)

//go:embed t1.png t2.png mask.png
var embedded embed.FS

// Asset names, matching the shader sampler names.
const (
	NameT1   = "t1"
	NameT2   = "t2"
	NameMask = "mask"
)

// Paths overrides embedded images with files. Empty fields use the
// embedded image.
type Paths struct {
	T1   string
	T2   string
	Mask string
}

// Set holds the decoded textures.
type Set struct {
	T1   *scene.Texture
	T2   *scene.Texture
	Mask *scene.Texture
}

// Load decodes all three images concurrently. The first failure cancels the
// remaining decodes and is returned wrapped with the asset name.
func Load(ctx context.Context, paths Paths) (Set, error) {
	var set Set
	g, ctx := errgroup.WithContext(ctx)

	jobs := []struct {
		name string
		path string
		dst  **scene.Texture
	}{
		{NameT1, paths.T1, &set.T1},
		{NameT2, paths.T2, &set.T2},
		{NameMask, paths.Mask, &set.Mask},
	}
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := loadOne(job.name, job.path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", job.name, err)
			}
			*job.dst = tex
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Set{}, err
	}
	return set, nil
}

func loadOne(name, path string) (*scene.Texture, error) {
	if path != "" {
		return scene.LoadTexture(path)
	}
	data, err := embedded.ReadFile(name + ".png")
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", name, err)
	}
	return scene.DecodeTextureBytes(name, data)
}

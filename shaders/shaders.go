// Package shaders provides the GLSL sources for the particle field, either
// embedded in the binary or read from a directory for live editing.
package shaders

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// File names looked up in a shader directory.
const (
	VertexFile   = "points.vert"
	FragmentFile = "points.frag"
)

//go:embed points.vert
var embeddedVertex string

//go:embed points.frag
var embeddedFragment string

// Source is a vertex/fragment shader pair.
type Source struct {
	Vertex   string
	Fragment string
	Origin   string // "embedded" or the directory read from
}

// Embedded returns the sources compiled into the binary.
func Embedded() Source {
	return Source{
		Vertex:   embeddedVertex,
		Fragment: embeddedFragment,
		Origin:   "embedded",
	}
}

// Load reads points.vert and points.frag from dir. An empty dir returns the
// embedded sources.
func Load(dir string) (Source, error) {
	if dir == "" {
		return Embedded(), nil
	}

	vert, err := os.ReadFile(filepath.Join(dir, VertexFile))
	if err != nil {
		return Source{}, fmt.Errorf("reading vertex shader: %w", err)
	}
	frag, err := os.ReadFile(filepath.Join(dir, FragmentFile))
	if err != nil {
		return Source{}, fmt.Errorf("reading fragment shader: %w", err)
	}
	if len(vert) == 0 || len(frag) == 0 {
		return Source{}, fmt.Errorf("empty shader source in %s", dir)
	}

	return Source{
		Vertex:   string(vert),
		Fragment: string(frag),
		Origin:   dir,
	}, nil
}

// WriteEmbedded copies the embedded sources into dir, for use as a starting point
// with -shader-dir. Existing files are left untouched.
func WriteEmbedded(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating shader dir: %w", err)
	}
	for name, src := range map[string]string{
		VertexFile:   embeddedVertex,
		FragmentFile: embeddedFragment,
	} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

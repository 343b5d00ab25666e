package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	set, err := Load(context.Background(), Paths{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.T1 == nil || set.T2 == nil || set.Mask == nil {
		t.Fatal("Load: expected all three textures")
	}
	if set.T1.Width != 256 || set.T1.Height != 256 {
		t.Errorf("t1: expected 256x256, got %dx%d", set.T1.Width, set.T1.Height)
	}
	if set.Mask.Width != 64 {
		t.Errorf("mask: expected width 64, got %d", set.Mask.Width)
	}

	// Mask is a soft disc: bright centre, dark corner
	centre := set.Mask.PixelAt(32, 32)
	corner := set.Mask.PixelAt(0, 0)
	if centre[0] < 200 || corner[0] != 0 {
		t.Errorf("mask: expected bright centre and black corner, got %v and %v", centre, corner)
	}
	if centre[3] != 255 {
		t.Errorf("mask: expected opaque pixels, got alpha %d", centre[3])
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	data, err := embedded.ReadFile("mask.png")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "custom.png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(context.Background(), Paths{T1: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.T1.Width != 64 {
		t.Errorf("t1 override: expected mask-sized 64, got %d", set.T1.Width)
	}
	if set.T1.Name != path {
		t.Errorf("t1 override: expected name %q, got %q", path, set.T1.Name)
	}
}

func TestLoadFailureNamesAsset(t *testing.T) {
	_, err := Load(context.Background(), Paths{T2: filepath.Join(t.TempDir(), "missing.png")})
	if err == nil {
		t.Fatal("expected error for missing t2")
	}
	if !strings.Contains(err.Error(), "loading t2") {
		t.Errorf("error: expected asset name, got %v", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, Paths{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

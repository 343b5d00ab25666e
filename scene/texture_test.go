package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeTextureFlipsRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255}) // top-left red
	img.Set(1, 2, color.RGBA{0, 0, 255, 255}) // bottom-right blue

	tex, err := DecodeTextureBytes("test", encodePNG(t, img))
	if err != nil {
		t.Fatalf("DecodeTextureBytes: %v", err)
	}
	if tex.Width != 2 || tex.Height != 3 {
		t.Fatalf("size: expected 2x3, got %dx%d", tex.Width, tex.Height)
	}
	if got := tex.PixelAt(0, 2); got != [4]byte{255, 0, 0, 255} {
		t.Errorf("top row after flip: expected red at (0, 2), got %v", got)
	}
	if got := tex.PixelAt(1, 0); got != [4]byte{0, 0, 255, 255} {
		t.Errorf("bottom row after flip: expected blue at (1, 0), got %v", got)
	}
}

func TestDecodeTextureInvalid(t *testing.T) {
	if _, err := DecodeTextureBytes("junk", []byte("not an image")); err == nil {
		t.Error("expected error decoding junk")
	}
	if _, err := LoadTexture("does/not/exist.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFlipYTwiceIsIdentity(t *testing.T) {
	tex := &Texture{Width: 1, Height: 3, Pixels: []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}}
	tex.FlipY()
	if tex.Pixels[0] != 3 || tex.Pixels[4] != 2 || tex.Pixels[8] != 1 {
		t.Errorf("FlipY: expected rows 3,2,1, got %v", tex.Pixels)
	}
	tex.FlipY()
	if tex.Pixels[0] != 1 || tex.Pixels[8] != 3 {
		t.Errorf("FlipY twice: expected original order, got %v", tex.Pixels)
	}
}

package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format, row-major. Row 0 is the bottom row of the
	// source image so that v=0 samples the bottom edge.
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// LoadTexture reads a PNG, JPEG, WebP or BMP file from disk.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	return DecodeTexture(path, f)
}

// DecodeTextureBytes decodes an in-memory image.
func DecodeTextureBytes(name string, data []byte) (*Texture, error) {
	return DecodeTexture(name, bytes.NewReader(data))
}

// DecodeTexture decodes an image, converts it to RGBA8 and flips it vertically.
func DecodeTexture(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	tex := &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}
	tex.FlipY()
	return tex, nil
}

// FlipY reverses the row order in place.
func (t *Texture) FlipY() {
	stride := t.Width * 4
	row := make([]byte, stride)
	for top, bottom := 0, t.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := t.Pixels[top*stride : (top+1)*stride]
		b := t.Pixels[bottom*stride : (bottom+1)*stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}

// PixelAt returns the RGBA value at (x, y) with y=0 the bottom row.
func (t *Texture) PixelAt(x, y int) [4]byte {
	i := (y*t.Width + x) * 4
	return [4]byte{t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2], t.Pixels[i+3]}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

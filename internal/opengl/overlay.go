package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"particle-field/core"
)

// Flat-colour quads in pixel coordinates, origin top-left.
const overlayVertSrc = `
#version 410 core
layout(location = 0) in vec2 inPos;
layout(location = 1) in vec4 inColor;

uniform vec2 screen;

out vec4 fragColor;

void main() {
    vec2 ndc = inPos / screen * 2.0 - 1.0;
    gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);
    fragColor = inColor;
}
` + "\x00"

const overlayFragSrc = `
#version 410 core
in vec4 fragColor;
out vec4 outColor;

void main() {
    outColor = fragColor;
}
` + "\x00"

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
	Color      core.Color
}

// OverlayRenderer draws batches of rectangles on top of the frame. It is
// created lazily by Renderer.DrawRects on first use.
type OverlayRenderer struct {
	prog      uint32
	vao       uint32
	vbo       uint32
	screenLoc int32
	vboCap    int // current VBO capacity in vertices
	buf       []float32
}

func newOverlayRenderer() (*OverlayRenderer, error) {
	prog, err := newProgram(overlayVertSrc, overlayFragSrc, nil)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	const stride = int32(6 * 4) // pos(2) + color(4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(8))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return &OverlayRenderer{
		prog:      prog,
		vao:       vao,
		vbo:       vbo,
		screenLoc: gl.GetUniformLocation(prog, gl.Str("screen\x00")),
	}, nil
}

func (or *OverlayRenderer) draw(rects []Rect, screenW, screenH float32) {
	if len(rects) == 0 || screenW <= 0 || screenH <= 0 {
		return
	}

	const vertsPerRect = 6
	const floatsPerVert = 6
	or.buf = or.buf[:0]
	for _, r := range rects {
		c := r.Color
		x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
		or.buf = append(or.buf,
			x0, y0, c.R, c.G, c.B, c.A,
			x1, y0, c.R, c.G, c.B, c.A,
			x1, y1, c.R, c.G, c.B, c.A,
			x0, y0, c.R, c.G, c.B, c.A,
			x1, y1, c.R, c.G, c.B, c.A,
			x0, y1, c.R, c.G, c.B, c.A,
		)
	}

	// Grow VBO only when needed
	gl.BindBuffer(gl.ARRAY_BUFFER, or.vbo)
	vertCount := len(rects) * vertsPerRect
	byteSize := vertCount * floatsPerVert * 4
	if vertCount > or.vboCap {
		gl.BufferData(gl.ARRAY_BUFFER, byteSize, gl.Ptr(or.buf), gl.DYNAMIC_DRAW)
		or.vboCap = vertCount
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, byteSize, gl.Ptr(or.buf))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(or.prog)
	gl.Uniform2f(or.screenLoc, screenW, screenH)
	gl.BindVertexArray(or.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertCount))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
}

func (or *OverlayRenderer) destroy() {
	gl.DeleteVertexArrays(1, &or.vao)
	gl.DeleteBuffers(1, &or.vbo)
	gl.DeleteProgram(or.prog)
}

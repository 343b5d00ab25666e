package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"particle-field/scene"
)

// PointUniforms is the per-frame input to the point shader.
type PointUniforms struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Resolution mgl32.Vec2

	Progress     float32
	MousePressed float32
	Move         float32
	Mouse        mgl32.Vec2
	Time         float32
	PointScale   float32
	GridSize     float32 // points per side, maps coordinates to UV
}

// Texture units used by the point shader samplers.
const (
	unitT1 = iota
	unitT2
	unitMask
)

// pointProgram is a linked point shader with cached uniform locations.
type pointProgram struct {
	prog uint32

	progressLoc     int32
	t1Loc           int32
	t2Loc           int32
	maskLoc         int32
	mousePressedLoc int32
	moveLoc         int32
	mouseLoc        int32
	timeLoc         int32
	resolutionLoc   int32
	viewLoc         int32
	projectionLoc   int32
	pointScaleLoc   int32
	gridSizeLoc     int32
}

func newPointProgram(vertSrc, fragSrc string) (*pointProgram, error) {
	attribs := map[string]uint32{}
	for _, a := range (&scene.PointField{}).Attributes() {
		attribs[a.Name] = a.Location
	}

	prog, err := newProgram(vertSrc, fragSrc, attribs)
	if err != nil {
		return nil, err
	}

	pp := &pointProgram{
		prog:            prog,
		progressLoc:     uniformLoc(prog, "progress"),
		t1Loc:           uniformLoc(prog, "t1"),
		t2Loc:           uniformLoc(prog, "t2"),
		maskLoc:         uniformLoc(prog, "mask"),
		mousePressedLoc: uniformLoc(prog, "mousePressed"),
		moveLoc:         uniformLoc(prog, "move"),
		mouseLoc:        uniformLoc(prog, "mouse"),
		timeLoc:         uniformLoc(prog, "time"),
		resolutionLoc:   uniformLoc(prog, "resolution"),
		viewLoc:         uniformLoc(prog, "view"),
		projectionLoc:   uniformLoc(prog, "projection"),
		pointScaleLoc:   uniformLoc(prog, "pointScale"),
		gridSizeLoc:     uniformLoc(prog, "gridSize"),
	}

	// Sampler units are fixed for the lifetime of the program
	gl.UseProgram(prog)
	gl.Uniform1i(pp.t1Loc, unitT1)
	gl.Uniform1i(pp.t2Loc, unitT2)
	gl.Uniform1i(pp.maskLoc, unitMask)
	gl.UseProgram(0)
	return pp, nil
}

func (pp *pointProgram) apply(u PointUniforms) {
	gl.UniformMatrix4fv(pp.viewLoc, 1, false, &u.View[0])
	gl.UniformMatrix4fv(pp.projectionLoc, 1, false, &u.Projection[0])
	gl.Uniform2f(pp.resolutionLoc, u.Resolution.X(), u.Resolution.Y())
	gl.Uniform1f(pp.progressLoc, u.Progress)
	gl.Uniform1f(pp.mousePressedLoc, u.MousePressed)
	gl.Uniform1f(pp.moveLoc, u.Move)
	gl.Uniform2f(pp.mouseLoc, u.Mouse.X(), u.Mouse.Y())
	gl.Uniform1f(pp.timeLoc, u.Time)
	gl.Uniform1f(pp.pointScaleLoc, u.PointScale)
	gl.Uniform1f(pp.gridSizeLoc, u.GridSize)
}

func (pp *pointProgram) destroy() {
	gl.DeleteProgram(pp.prog)
}

// PointRenderer owns the GPU resources for the particle field: one VAO with
// a separate static VBO per attribute.
type PointRenderer struct {
	prog  *pointProgram
	vao   uint32
	vbos  []uint32
	count int32
}

func newPointRenderer(vertSrc, fragSrc string) (*PointRenderer, error) {
	prog, err := newPointProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}
	pr := &PointRenderer{prog: prog}
	gl.GenVertexArrays(1, &pr.vao)
	return pr, nil
}

// swapProgram replaces the shader program, keeping the current one on error.
func (pr *PointRenderer) swapProgram(vertSrc, fragSrc string) error {
	prog, err := newPointProgram(vertSrc, fragSrc)
	if err != nil {
		return fmt.Errorf("point shader: %w", err)
	}
	pr.prog.destroy()
	pr.prog = prog
	return nil
}

// upload copies every field attribute into its own buffer. Any previously
// uploaded field is released first.
func (pr *PointRenderer) upload(field *scene.PointField) error {
	attrs := field.Attributes()
	for _, a := range attrs {
		if len(a.Data) != field.Count()*a.Components {
			return fmt.Errorf("attribute %s: %d floats for %d points", a.Name, len(a.Data), field.Count())
		}
	}
	pr.releaseBuffers()

	pr.vbos = make([]uint32, len(attrs))
	gl.GenBuffers(int32(len(pr.vbos)), &pr.vbos[0])

	gl.BindVertexArray(pr.vao)
	for i, a := range attrs {
		gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbos[i])
		if len(a.Data) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(a.Data)*4, gl.Ptr(a.Data), gl.STATIC_DRAW)
		}
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, int32(a.Components), gl.FLOAT, false, 0, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	pr.count = int32(field.Count())
	return nil
}

// draw renders the field as transparent points over whatever is already in
// the framebuffer. Depth is neither tested nor written.
func (pr *PointRenderer) draw(u PointUniforms, t1, t2, mask *scene.Texture) {
	if pr.count == 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	gl.UseProgram(pr.prog.prog)
	pr.prog.apply(u)
	bindTexture(unitT1, t1)
	bindTexture(unitT2, t2)
	bindTexture(unitMask, mask)

	gl.BindVertexArray(pr.vao)
	gl.DrawArrays(gl.POINTS, 0, pr.count)
	gl.BindVertexArray(0)

	// Restore render state
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (pr *PointRenderer) releaseBuffers() {
	if len(pr.vbos) > 0 {
		gl.DeleteBuffers(int32(len(pr.vbos)), &pr.vbos[0])
		pr.vbos = nil
	}
	pr.count = 0
}

func (pr *PointRenderer) destroy() {
	pr.releaseBuffers()
	gl.DeleteVertexArrays(1, &pr.vao)
	pr.prog.destroy()
}

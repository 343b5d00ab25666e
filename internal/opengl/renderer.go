package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"particle-field/core"
	"particle-field/scene"
)

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	log *zap.Logger

	points  *PointRenderer
	overlay *OverlayRenderer // nil until first DrawRects call

	viewportW int32
	viewportH int32
}

// NewRenderer initialises OpenGL and compiles the point shader.
// Must be called after the GLFW window context is made current.
func NewRenderer(log *zap.Logger, vertSrc, fragSrc string) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("opengl initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	points, err := newPointRenderer(vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		log:    log,
		points: points,
	}, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Viewport returns the current viewport size in pixels.
func (r *Renderer) Viewport() (int, int) {
	return int(r.viewportW), int(r.viewportH)
}

// BeginFrame clears the default framebuffer.
func (r *Renderer) BeginFrame(clear core.Color) {
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReloadPointShader recompiles the point shader. On failure the previous
// program stays active and the error is returned.
func (r *Renderer) ReloadPointShader(vertSrc, fragSrc string) error {
	return r.points.swapProgram(vertSrc, fragSrc)
}

// UploadField copies the field attributes to the GPU.
func (r *Renderer) UploadField(field *scene.PointField) error {
	if err := r.points.upload(field); err != nil {
		return fmt.Errorf("upload field: %w", err)
	}
	r.log.Debug("field uploaded", zap.Int("points", field.Count()))
	return nil
}

// DrawPoints renders the uploaded field with textures t1, t2 and mask.
func (r *Renderer) DrawPoints(u PointUniforms, t1, t2, mask *scene.Texture) {
	r.points.draw(u, t1, t2, mask)
}

// DrawRects renders screen-space rectangles on top of the frame.
// Lazily creates the OverlayRenderer on first call.
func (r *Renderer) DrawRects(rects []Rect, screenW, screenH float32) {
	if r.overlay == nil {
		or, err := newOverlayRenderer()
		if err != nil {
			r.log.Error("overlay renderer init", zap.Error(err))
			return
		}
		r.overlay = or
	}
	r.overlay.draw(rects, screenW, screenH)
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	if r.overlay != nil {
		r.overlay.destroy()
	}
	r.points.destroy()
}

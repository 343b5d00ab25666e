package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"particle-field/core"
	"particle-field/interaction"
	"particle-field/internal/opengl"
	"particle-field/scene"
	"particle-field/shaders"
)

// Textures are the three images sampled by the point shader.
type Textures struct {
	T1   *scene.Texture
	T2   *scene.Texture
	Mask *scene.Texture
}

func (t Textures) all() []*scene.Texture {
	return []*scene.Texture{t.T1, t.T2, t.Mask}
}

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	log    *zap.Logger
	Camera *scene.Camera

	ClearColor core.Color
	Progress   float32 // t1/t2 blend
	PointScale float32

	field    *scene.PointField
	textures Textures

	// Queued overlay rectangles, flushed in Present()
	rectQueue []opengl.Rect
}

func NewRenderEngine(window *core.Window, camera *scene.Camera, src shaders.Source, log *zap.Logger) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer(log, src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	fbW, fbH := window.GetFramebufferSize()
	glRenderer.SetViewport(fbW, fbH)
	camera.UpdateAspectRatio(float32(fbW), float32(fbH))

	log.Info("Render engine initialized", zap.String("shaders", src.Origin))
	return &RenderEngine{
		gl:         glRenderer,
		window:     window,
		log:        log,
		Camera:     camera,
		ClearColor: core.ColorBlack,
		PointScale: 4000,
	}, nil
}

// SetTextures uploads the shader textures. Must be called from the main thread.
func (re *RenderEngine) SetTextures(t Textures) error {
	for _, tex := range t.all() {
		if err := opengl.UploadTexture(tex); err != nil {
			return fmt.Errorf("upload texture: %w", err)
		}
	}
	for _, old := range re.textures.all() {
		opengl.DeleteTexture(old)
	}
	re.textures = t
	return nil
}

// SetField uploads the particle attributes. Must be called from the main thread.
func (re *RenderEngine) SetField(field *scene.PointField) error {
	if err := re.gl.UploadField(field); err != nil {
		return err
	}
	re.field = field
	return nil
}

// Ready reports whether a field and its textures have been uploaded.
func (re *RenderEngine) Ready() bool {
	return re.field != nil && re.textures.T1 != nil
}

// ReloadShaders swaps in new point shader sources. The running program is
// kept if compilation fails.
func (re *RenderEngine) ReloadShaders(src shaders.Source) error {
	if err := re.gl.ReloadPointShader(src.Vertex, src.Fragment); err != nil {
		return fmt.Errorf("reload shaders from %s: %w", src.Origin, err)
	}
	re.log.Info("Shaders reloaded", zap.String("shaders", src.Origin))
	return nil
}

// Render clears the frame and, once ready, draws the field with the given
// interaction uniforms.
func (re *RenderEngine) Render(u interaction.Uniforms) {
	re.gl.BeginFrame(re.ClearColor)
	if !re.Ready() {
		return
	}

	fbW, fbH := re.gl.Viewport()
	re.gl.DrawPoints(opengl.PointUniforms{
		View:         re.Camera.GetViewMatrix(),
		Projection:   re.Camera.GetProjectionMatrix(),
		Resolution:   mgl32.Vec2{float32(fbW), float32(fbH)},
		Progress:     re.Progress,
		MousePressed: u.MousePressed,
		Move:         u.Move,
		Mouse:        u.Mouse,
		Time:         u.Time,
		PointScale:   re.PointScale,
		GridSize:     float32(re.field.Size),
	}, re.textures.T1, re.textures.T2, re.textures.Mask)
}

// DrawRect queues a screen-space rectangle (window units, origin top-left)
// to be drawn in the next Present() call.
func (re *RenderEngine) DrawRect(x, y, w, h float32, color core.Color) {
	re.rectQueue = append(re.rectQueue, opengl.Rect{X: x, Y: y, W: w, H: h, Color: color})
}

// Present flushes queued overlay rectangles and swaps buffers.
func (re *RenderEngine) Present() {
	if len(re.rectQueue) > 0 {
		re.gl.DrawRects(re.rectQueue, float32(re.window.Width), float32(re.window.Height))
		re.rectQueue = re.rectQueue[:0]
	}
	re.window.SwapBuffers()
}

// Resize updates the viewport and camera aspect to a new framebuffer size.
func (re *RenderEngine) Resize(fbWidth, fbHeight int) {
	re.gl.SetViewport(fbWidth, fbHeight)
	re.Camera.UpdateAspectRatio(float32(fbWidth), float32(fbHeight))
}

func (re *RenderEngine) Destroy() {
	for _, tex := range re.textures.all() {
		opengl.DeleteTexture(tex)
	}
	re.gl.Destroy()
}

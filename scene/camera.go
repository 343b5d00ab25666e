package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking down -Z from its position.
type Camera struct {
	Position    mgl32.Vec3
	Target      mgl32.Vec3
	Up          mgl32.Vec3
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// Cached matrices
	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	invViewProj      mgl32.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Target:      mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

// SetPosition moves the camera, keeping its viewing direction.
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	dir := c.Target.Sub(c.Position)
	c.Position = pos
	c.Target = pos.Add(dir)
	c.dirty = true
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

// GetInverseViewProjection maps clip space back to world space.
func (c *Camera) GetInverseViewProjection() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.invViewProj
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.Position, c.Target, c.Up)
	c.projectionMatrix = mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.invViewProj = c.projectionMatrix.Mul4(c.viewMatrix).Inv()
	c.dirty = false
}

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// HitResult stores the result of a ray intersection test
type HitResult struct {
	Distance float32
	Point    mgl32.Vec3
}

// ScreenToNDC converts window coordinates (origin top-left) to normalized
// device coordinates in [-1, 1] with +Y up.
func ScreenToNDC(x, y, width, height float32) mgl32.Vec2 {
	return mgl32.Vec2{
		(x/width)*2 - 1,
		-(y/height)*2 + 1,
	}
}

// NDCToRay casts a ray from the camera through an NDC point.
func NDCToRay(ndc mgl32.Vec2, camera *Camera) Ray {
	inv := camera.GetInverseViewProjection()

	near := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})
	nearW := near.Vec3().Mul(1 / near.W())
	farW := far.Vec3().Mul(1 / far.W())

	return Ray{
		Origin:    camera.Position,
		Direction: farW.Sub(nearW).Normalize(),
	}
}

// ScreenToRay converts a screen-space pointer position to a world-space ray.
func ScreenToRay(x, y, width, height float32, camera *Camera) Ray {
	return NDCToRay(ScreenToNDC(x, y, width, height), camera)
}

// Plane is a bounded flat rectangle used for pointer picking. It is never
// drawn. Only its front face (the side Normal points to) can be hit.
type Plane struct {
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Right  mgl32.Vec3 // in-plane X axis
	Width  float32
	Height float32
}

// NewPickingPlane returns a width×height plane centred at the origin in the
// XY plane, facing +Z.
func NewPickingPlane(width, height float32) Plane {
	return Plane{
		Normal: mgl32.Vec3{0, 0, 1},
		Right:  mgl32.Vec3{1, 0, 0},
		Width:  width,
		Height: height,
	}
}

// Intersect tests the ray against the plane. The second return is false when
// the ray is parallel, points away, hits the back face or lands outside the
// plane extents.
func (p Plane) Intersect(ray Ray) (HitResult, bool) {
	const epsilon = 1e-6

	denom := ray.Direction.Dot(p.Normal)
	if denom > -epsilon {
		return HitResult{}, false // parallel or back face
	}

	t := p.Center.Sub(ray.Origin).Dot(p.Normal) / denom
	if t <= 0 {
		return HitResult{}, false
	}

	point := ray.At(t)
	local := point.Sub(p.Center)
	up := p.Normal.Cross(p.Right)
	if abs32(local.Dot(p.Right)) > p.Width/2 || abs32(local.Dot(up)) > p.Height/2 {
		return HitResult{}, false
	}

	return HitResult{Distance: t, Point: point}, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package render

import (
	"github.com/chewxy/math32"

	"splatviewer/internal/math3"
	"splatviewer/internal/splat"
)

// Perspective projection constants shared by every render pass.
const (
	fovYRadians = 45 * math32.Pi / 180
	nearPlane   = 0.1
	farPlane    = 100.0
)

// Camera holds the mutable camera state. The orthonormal basis and the view
// matrix are re-derived from Position/Target/UpHint on every use; they are
// never stored, which keeps a stale up vector from accumulating roll.
type Camera struct {
	Position math3.Vec3
	Target   math3.Vec3
	UpHint   math3.Vec3
}

// DefaultCamera places the camera at (3,3,3) looking at the scene's average
// splat position with a (0,1,0) up hint.
func DefaultCamera(scene *splat.Scene) Camera {
	return Camera{
		Position: math3.V3(3, 3, 3),
		Target:   scene.AveragePosition(),
		UpHint:   math3.V3(0, 1, 0),
	}
}

// Basis derives the current orthonormal forward/side/up triple.
func (c *Camera) Basis() (forward, side, up math3.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	side = forward.Cross(c.UpHint).Normalize()
	up = side.Cross(forward).Normalize()
	return forward, side, up
}

// View builds the right-handed look-at matrix for the current state.
func (c *Camera) View() math3.Mat4 {
	_, _, up := c.Basis()
	return math3.LookAt(c.Position, c.Target, up)
}

// Projection builds the right-handed perspective matrix for the viewport
// aspect ratio.
func (c *Camera) Projection(aspect float32) math3.Mat4 {
	return math3.Perspective(fovYRadians, aspect, nearPlane, farPlane)
}

// ViewProjection is the joint matrix applied to world-space splat positions.
func (c *Camera) ViewProjection(aspect float32) math3.Mat4 {
	return c.Projection(aspect).Mul(c.View())
}

// Translate pans the camera along a world axis, carrying the look target
// with it so the view direction is unchanged.
func (c *Camera) Translate(delta math3.Vec3) {
	c.Position = c.Position.Add(delta)
	c.Target = c.Target.Add(delta)
}

// Zoom moves the camera along its current forward vector. Positive steps
// move toward the look target.
func (c *Camera) Zoom(step float32) {
	forward, _, _ := c.Basis()
	c.Position = c.Position.Add(forward.Scale(step))
}

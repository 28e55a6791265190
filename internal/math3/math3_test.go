package math3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Ops(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	assert.Equal(t, V3(5, 7, 9), a.Add(b))
	assert.Equal(t, V3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, V3(-3, 6, -3), a.Cross(b))
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 0, 4).Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-6)
	assert.InDelta(t, 0.6, v.X, 1e-6)
	assert.InDelta(t, 0.8, v.Z, 1e-6)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize(), "zero vector normalizes to zero")
}

func TestCrossOrthogonal(t *testing.T) {
	a := V3(1, 2, 3).Normalize()
	b := V3(-2, 1, 5).Normalize()
	c := a.Cross(b)

	assert.InDelta(t, 0, c.Dot(a), 1e-6)
	assert.InDelta(t, 0, c.Dot(b), 1e-6)
}

func TestMat4Identity(t *testing.T) {
	v := V4(1, 2, 3, 4)
	assert.Equal(t, v, Identity().MulVec4(v))
	assert.Equal(t, Identity(), Identity().Mul(Identity()))
}

func TestLookAtMapsTargetToViewAxis(t *testing.T) {
	view := LookAt(V3(3, 3, 3), V3(0, 0, 0), V3(0, 1, 0))

	// The look target must land on the negative z axis in view space.
	target := view.MulVec4(V4(0, 0, 0, 1))
	assert.InDelta(t, 0, target.X, 1e-5)
	assert.InDelta(t, 0, target.Y, 1e-5)
	assert.Less(t, target.Z, float32(0))

	// The eye itself maps to the view-space origin.
	eye := view.MulVec4(V4(3, 3, 3, 1))
	assert.InDelta(t, 0, eye.X, 1e-5)
	assert.InDelta(t, 0, eye.Y, 1e-5)
	assert.InDelta(t, 0, eye.Z, 1e-5)
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = float32(0.1), float32(100)
	proj := Perspective(0.785398, 1, near, far)

	onNear := proj.MulVec4(V4(0, 0, -near, 1))
	assert.InDelta(t, -1, onNear.Z/onNear.W, 1e-5)

	onFar := proj.MulVec4(V4(0, 0, -far, 1))
	assert.InDelta(t, 1, onFar.Z/onFar.W, 1e-4)

	// Points on the view axis stay centered.
	assert.InDelta(t, 0, onNear.X, 1e-6)
	assert.InDelta(t, 0, onNear.Y, 1e-6)
}

package math3

import "github.com/chewxy/math32"

// Mat4 is a 4x4 float32 matrix in column-major order: element (row, col)
// lives at index col*4+row.
type Mat4 [16]float32

func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Mul returns the matrix product m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 returns the product m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// LookAt builds a right-handed view matrix with the camera at eye, looking
// toward target, with the given up direction.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	side := forward.Cross(up).Normalize()
	trueUp := side.Cross(forward)

	var m Mat4
	m[0], m[4], m[8] = side.X, side.Y, side.Z
	m[1], m[5], m[9] = trueUp.X, trueUp.Y, trueUp.Z
	m[2], m[6], m[10] = -forward.X, -forward.Y, -forward.Z
	m[12] = -side.Dot(eye)
	m[13] = -trueUp.Dot(eye)
	m[14] = forward.Dot(eye)
	m[15] = 1
	return m
}

// Perspective builds a right-handed perspective projection matrix with a
// [-1, 1] clip-space depth range.
func Perspective(fovYRadians, aspect, near, far float32) Mat4 {
	tanHalf := math32.Tan(fovYRadians / 2)

	var m Mat4
	m[0] = 1 / (aspect * tanHalf)
	m[5] = 1 / tanHalf
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -(2 * far * near) / (far - near)
	return m
}

package types

import "math"

const floatCmpEpsilon = 1e-7

// 4x4 matrix stored in column-major order. The transform helpers follow the
// conventions of https://github.com/go-gl/mathgl/blob/master/mgl32
type Mat4 [16]float32

// Create an identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Multiply two 4x4 matrices.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * m2[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Multiply matrix with a 4 component vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Transpose matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Invert matrix using gauss-jordan elimination with partial pivoting. A
// singular matrix yields the zero matrix.
func (m Mat4) Inv() Mat4 {
	var aug [4][8]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			aug[row][col] = m[col*4+row]
		}
		aug[col][4+col] = 1
	}

	for col := 0; col < 4; col++ {
		// Pick the row with the largest magnitude pivot
		pivot := col
		for row := col + 1; row < 4; row++ {
			if abs32(aug[row][col]) > abs32(aug[pivot][col]) {
				pivot = row
			}
		}
		if abs32(aug[pivot][col]) < floatCmpEpsilon {
			return Mat4{}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		scale := 1.0 / aug[col][col]
		for k := 0; k < 8; k++ {
			aug[col][k] *= scale
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			for k := 0; k < 8; k++ {
				aug[row][k] -= factor * aug[col][k]
			}
		}
	}

	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = aug[row][4+col]
		}
	}
	return out
}

// Transform a point by this matrix applying the homogeneous divide.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	out := m.Mul4x1(v.Vec4(1))
	return out.Mul(1.0 / out[3]).Vec3()
}

// Transform a direction vector by this matrix. No divide is applied.
func (m Mat4) TransformVec(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// Create a translation matrix.
func Translate3D(tx, ty, tz float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		tx, ty, tz, 1,
	}
}

// Create a scale matrix.
func Scale3D(sx, sy, sz float32) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Create a rotation matrix around the Y axis. The angle is given in radians.
func HomogRotate3DY(angle float32) Mat4 {
	sin := float32(math.Sin(float64(angle)))
	cos := float32(math.Cos(float64(angle)))
	return Mat4{
		cos, 0, -sin, 0,
		0, 1, 0, 0,
		sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// Create a perspective projection matrix. The vertical FOV is given in
// degrees.
func Perspective4(fovDegrees, aspect, near, far float32) Mat4 {
	fovy := float64(fovDegrees) * math.Pi / 180.0
	f := float32(1.0 / math.Tan(fovy/2.0))
	nmf := near - far

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (near + far) / nmf, -1,
		0, 0, (2.0 * far * near) / nmf, 0,
	}
}

// Create a world to view matrix for an eye looking at center.
func LookAtV(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up.Normalize()).Normalize()
	u := s.Cross(f)

	rot := Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		0, 0, 0, 1,
	}
	return rot.Mul4(Translate3D(-eye[0], -eye[1], -eye[2]))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package common

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a column-major 4x4 transform, laid out m[col*4+row] with the
// translation in m[12], m[13], m[14]. This is the layout tracking platforms
// hand poses over in.
type Mat4 [16]float64

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translation(v r3.Vec) Mat4 {
	m := Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

func RotationY(rad float64) Mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func RotationX(rad float64) Mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

// Position extracts the world position of a transform.
func Position(m Mat4) r3.Vec {
	return r3.Vec{X: m[12], Y: m[13], Z: m[14]}
}

// TransformPoint applies m to the point v (w = 1).
func TransformPoint(m Mat4, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// TransformDir applies only the rotation/scale part of m to v (w = 0).
func TransformDir(m Mat4, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Forward is the viewing direction of a pose; viewers look down their local -Z.
func Forward(m Mat4) r3.Vec {
	return r3.Unit(TransformDir(m, r3.Vec{Z: -1}))
}

// CameraPose builds the world transform of a camera at eye looking at target.
// It is the inverse of LookAt.
func CameraPose(eye, target, up r3.Vec) Mat4 {
	f := Direction(eye, target, r3.Vec{Z: -1})
	s := r3.Cross(f, up)
	if r3.Norm(s) == 0 {
		s = r3.Vec{X: 1}
	}
	s = r3.Unit(s)
	u := r3.Cross(s, f)
	return Mat4{
		s.X, s.Y, s.Z, 0,
		u.X, u.Y, u.Z, 0,
		-f.X, -f.Y, -f.Z, 0,
		eye.X, eye.Y, eye.Z, 1,
	}
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, target, up r3.Vec) Mat4 {
	f := Direction(eye, target, r3.Vec{Z: -1})
	s := r3.Cross(f, up)
	if r3.Norm(s) == 0 {
		s = r3.Vec{X: 1}
	}
	s = r3.Unit(s)
	u := r3.Cross(s, f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-r3.Dot(s, eye), -r3.Dot(u, eye), r3.Dot(f, eye), 1,
	}
}

// Perspective builds an OpenGL style projection matrix.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Project maps a world point through m into normalized device coordinates.
// ok is false for points behind the eye.
func Project(m Mat4, v r3.Vec) (x, y float64, ok bool) {
	cx := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	cy := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	cw := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if cw <= 1e-6 {
		return 0, 0, false
	}
	return cx / cw, cy / cw, true
}

// InverseRigid inverts a transform made only of rotation and translation.
func InverseRigid(m Mat4) Mat4 {
	t := Position(m)
	out := Mat4{
		m[0], m[4], m[8], 0,
		m[1], m[5], m[9], 0,
		m[2], m[6], m[10], 0,
		0, 0, 0, 1,
	}
	inv := TransformDir(out, t)
	out[12], out[13], out[14] = -inv.X, -inv.Y, -inv.Z
	return out
}

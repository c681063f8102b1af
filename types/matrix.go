package types

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/f32"
)

// Tolerance used when comparing floats.
const floatCmpEpsilon float32 = 1e-5

// Matrices are stored in column-major order using the same memory layout
// as mgl32 so they can be handed to mgl32 (and the GL uniform calls)
// without copying.
type Mat3 f32.Mat3
type Mat4 f32.Mat4

// Create a 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Create a 4x4 translation matrix.
func Translate4(v Vec3) Mat4 {
	return Mat4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Create a 4x4 scale matrix.
func Scale4(v Vec3) Mat4 {
	return Mat4(mgl32.Scale3D(v[0], v[1], v[2]))
}

// Create a rotation matrix from euler angles expressed in degrees. The
// rotations are composed as Rx * Ry * Rz.
func RotateEuler4(angles Vec3) Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(angles[0]))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(angles[1]))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(angles[2]))
	return Mat4(rx.Mul4(ry).Mul4(rz))
}

// Create a view matrix looking from eye towards center.
func LookAtV(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(center), mgl32.Vec3(up)))
}

// Create a perspective projection matrix. The fov is expressed in degrees.
func Perspective4(fovy, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(mgl32.DegToRad(fovy), aspect, near, far))
}

// Multiply two 4x4 matrices.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(m2)))
}

// Multiply a 4x4 matrix with a 4 component vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// Transform a point (w = 1) and return its 3D coordinates.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// Get the inverse of the matrix. A singular matrix yields the zero matrix.
func (m Mat4) Inv() Mat4 {
	return Mat4(mgl32.Mat4(m).Inv())
}

// Get the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4(mgl32.Mat4(m).Transpose())
}

// Get a matrix column.
func (m Mat4) Col(col int) Vec4 {
	return Vec4(mgl32.Mat4(m).Col(col))
}

// Get the largest basis vector length of the upper-left 3x3 (linear) part
// of the matrix. For a T*R*S matrix this equals the largest scale factor.
func (m Mat4) MaxScale() float32 {
	var maxLen float32
	for col := 0; col < 3; col++ {
		if l := m.Col(col).Vec3().Len(); l > maxLen {
			maxLen = l
		}
	}
	return maxLen
}

// Check whether two matrices are equal within the float comparison epsilon.
func (m Mat4) ApproxEqual(m2 Mat4) bool {
	for i := range m {
		if math.Abs(float64(m[i]-m2[i])) > float64(floatCmpEpsilon) {
			return false
		}
	}
	return true
}

// Extract the top-left 3x3 matrix from a 4x4 matrix.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Get the matrix that transforms normals by m: the inverse transpose of the
// top-left 3x3 block. A singular block yields the zero matrix.
func (m Mat4) NormalMat3() Mat3 {
	return Mat3(mgl32.Mat3(m.Mat3()).Inv().Transpose())
}

// Convert an angle from degrees to radians.
func DegToRad(angle float32) float32 {
	return angle * math.Pi / 180.0
}

package math

import "github.com/chewxy/math32"

// Mat4 is stored row-major and multiplies row vectors (v * M), so the
// translation lives in row 3. The memory layout is what OpenGL expects for a
// column-major matrix, so it uploads with transpose=false.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m followed by other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec3(v Vec3) Vec3 {
	return v.ToVec4(1).MulMat(m).ToVec3DivW()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[3][0], Y: m[3][1], Z: m[3][2]}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationEuler builds an intrinsic X-then-Y-then-Z rotation. A row
// vector meets Z first, then Y, then X.
func Mat4RotationEuler(euler Vec3) Mat4 {
	return Mat4RotationZ(euler.Z).Mul(Mat4RotationY(euler.Y)).Mul(Mat4RotationX(euler.X))
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := math32.Tan(fovY / 2)

	var m Mat4
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

// Mat4TRS composes scale, then rotation, then translation.
func Mat4TRS(translation, rotation, scale Vec3) Mat4 {
	return Mat4Scale(scale).Mul(Mat4RotationEuler(rotation)).Mul(Mat4Translation(translation))
}

// Inverse uses Gauss-Jordan elimination with partial pivoting. ok is false
// for a singular matrix, in which case the identity is returned.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	a := m
	inv = Mat4Identity()
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math32.Abs(a[row][col]) > math32.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if a[pivot][col] == 0 {
			return Mat4Identity(), false
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		p := 1 / a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] *= p
			inv[col][j] *= p
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				a[row][j] -= f * a[col][j]
				inv[row][j] -= f * inv[col][j]
			}
		}
	}
	return inv, true
}

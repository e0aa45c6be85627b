package math

import (
	"math"
	"testing"
)

const tolerance = 1e-4

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func mat4Approx(a, b Mat4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approx(a[i][j], b[i][j]) {
				return false
			}
		}
	}
	return true
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got := v1.Add(v2); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := v2.Sub(v1); got != NewVec3(3, 3, 3) {
		t.Errorf("Sub: got %v", got)
	}
	if got := v1.Dot(v2); got != 32 {
		t.Errorf("Dot: expected 32, got %v", got)
	}
	// Right x Up = Front in a right-handed system
	if got := Vec3Right.Cross(Vec3Up); got != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, got)
	}
	if got := NewVec3(3, 0, 0).Normalize(); got != Vec3Right {
		t.Errorf("Normalize: got %v", got)
	}
}

func TestVec2Approach(t *testing.T) {
	v := NewVec2(0, 0)
	target := NewVec2(1, -1)

	half := v.Approach(target, 0.5)
	if half != NewVec2(0.5, -0.5) {
		t.Errorf("Approach(0.5): got %v", half)
	}

	// Rates above one clamp so the result never overshoots.
	over := v.Approach(target, 3)
	if over != target {
		t.Errorf("Approach(3): expected %v, got %v", target, over)
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if got := NewVec4(0, 0, 0, 1).MulMat(m).ToVec3(); got != translation {
		t.Errorf("Translation: expected %v, got %v", translation, got)
	}
	if m.Translation() != translation {
		t.Errorf("Translation(): got %v", m.Translation())
	}
}

func TestMat4RotationEulerMatchesQuaternion(t *testing.T) {
	angles := []Vec3{
		{0.3, 0, 0},
		{0, 1.1, 0},
		{0, 0, -0.7},
		{0.4, -1.2, 2.5},
		{6, 3, 1.5},
	}
	for _, e := range angles {
		m := Mat4RotationEuler(e)
		q := QuaternionFromEuler(e).ToMat4()
		if !mat4Approx(m, q) {
			t.Errorf("euler %v: matrix %v != quaternion %v", e, m, q)
		}
	}
}

func TestMat4RotationEulerAppliesXFirst(t *testing.T) {
	e := NewVec3(float32(math.Pi/2), float32(math.Pi/2), 0)
	got := Mat4RotationEuler(e).MulVec3(Vec3Front)
	// Y(+90) takes +Z to +X, then X(+90) leaves +X alone.
	if !approx(got.X, 1) || !approx(got.Y, 0) || !approx(got.Z, 0) {
		t.Errorf("expected (1,0,0), got %v", got)
	}
}

func TestMat4TRSOrder(t *testing.T) {
	m := Mat4TRS(NewVec3(10, 0, 0), NewVec3(0, 0, float32(math.Pi/2)), NewVec3(2, 2, 2))
	// Scale to (2,0,0), rotate about Z to (0,2,0), then translate.
	got := m.MulVec3(Vec3Right)
	if !approx(got.X, 10) || !approx(got.Y, 2) || !approx(got.Z, 0) {
		t.Errorf("expected (10,2,0), got %v", got)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4TRS(NewVec3(1, -2, 3), NewVec3(0.4, 1.3, -0.2), NewVec3(1, 2, 0.5))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	if !mat4Approx(m.Mul(inv), Mat4Identity()) {
		t.Errorf("m * inv is not identity: %v", m.Mul(inv))
	}

	var singular Mat4
	if _, ok := singular.Inverse(); ok {
		t.Error("expected singular matrix to report !ok")
	}
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	got := q.RotateVector(Vec3Right)
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, -1) {
		t.Errorf("expected approximately (0,0,-1), got %v", got)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(75*math.Pi/180), 16.0/9.0, 0.05, 100)

	// A point on the near plane maps to depth -1, on the far plane to +1.
	near := NewVec3(0, 0, -0.05)
	far := NewVec3(0, 0, -100)
	if got := m.MulVec3(near).Z; !approx(got, -1) {
		t.Errorf("near plane depth: expected -1, got %v", got)
	}
	if got := m.MulVec3(far).Z; math.Abs(float64(got-1)) > 1e-3 {
		t.Errorf("far plane depth: expected 1, got %v", got)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationEuler(NewVec3(0.1, 0.2, 0.3))
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

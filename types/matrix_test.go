package types

import (
	"math"
	"testing"
)

func matEq(t *testing.T, exp, got Mat4, context string) {
	t.Helper()
	for k := 0; k < 16; k++ {
		diff := float64(exp[k] - got[k])
		if math.Abs(diff) > 1e-4 {
			t.Fatalf("%s: element %d differs; expected %f got %f", context, k, exp[k], got[k])
		}
	}
}

func vecEq(t *testing.T, exp, got Vec3, context string) {
	t.Helper()
	if exp.Sub(got).Len() > 1e-4 {
		t.Fatalf("%s: expected %v; got %v", context, exp, got)
	}
}

func TestMat4Mul4(t *testing.T) {
	m := Translate3D(1, 2, 3).Mul4(Scale3D(2, 2, 2))
	vecEq(t, XYZ(3, 4, 5), m.TransformPoint(XYZ(1, 1, 1)), "translate * scale point transform")

	matEq(t, Translate3D(1, 2, 3), Ident4().Mul4(Translate3D(1, 2, 3)), "identity multiplication")
}

func TestMat4Inv(t *testing.T) {
	mats := []Mat4{
		Ident4(),
		Translate3D(1, -2, 3),
		Scale3D(2, 4, 0.5),
		HomogRotate3DY(0.7),
		Translate3D(5, 6, 7).Mul4(HomogRotate3DY(-1.2)).Mul4(Scale3D(3, 1, 2)),
		Perspective4(60, 1.5, 1, 1000),
		LookAtV(XYZ(1, 2, 3), XYZ(0, 0, 0), XYZ(0, 1, 0)),
	}

	for _, m := range mats {
		matEq(t, Ident4(), m.Mul4(m.Inv()), "M * Inv(M)")
		matEq(t, Ident4(), m.Inv().Mul4(m), "Inv(M) * M")
	}

	// A singular matrix inverts to the zero matrix
	matEq(t, Mat4{}, Scale3D(1, 1, 0).Inv(), "singular inverse")
}

func TestMat4TransformVec(t *testing.T) {
	m := Translate3D(10, 20, 30)

	// Vector transforms ignore the translation, point transforms apply it
	vecEq(t, XYZ(1, 0, 0), m.TransformVec(XYZ(1, 0, 0)), "translated vector")
	vecEq(t, XYZ(11, 20, 30), m.TransformPoint(XYZ(1, 0, 0)), "translated point")

	rot := HomogRotate3DY(float32(math.Pi / 2))
	vecEq(t, XYZ(0, 0, -1), rot.TransformVec(XYZ(1, 0, 0)), "rotated vector")
}

func TestLookAtV(t *testing.T) {
	eye := XYZ(0, 0, 5)
	view := LookAtV(eye, XYZ(0, 0, 0), XYZ(0, 1, 0))

	// The eye maps to the view space origin and the look target lands on
	// the negative Z axis.
	vecEq(t, XYZ(0, 0, 0), view.TransformPoint(eye), "eye position")
	vecEq(t, XYZ(0, 0, -5), view.TransformPoint(XYZ(0, 0, 0)), "look target")

	// The inverse takes view space back to world space
	camToWorld := view.Inv()
	vecEq(t, eye, camToWorld.TransformPoint(XYZ(0, 0, 0)), "camera to world origin")
}

func TestPerspectiveUnproject(t *testing.T) {
	proj := Perspective4(45, 1, 1, 1000)
	invProj := proj.Inv()

	// The NDC center unprojects to a view space direction straight down -Z
	target := invProj.Mul4x1(XYZW(0, 0, 1, 1))
	dir := target.Vec3().Mul(1 / target[3]).Normalize()
	vecEq(t, XYZ(0, 0, -1), dir, "center unprojection")

	// Positive NDC X unprojects to a direction with a positive X component
	target = invProj.Mul4x1(XYZW(0.5, 0, 1, 1))
	dir = target.Vec3().Mul(1 / target[3]).Normalize()
	if dir[0] <= 0 || dir[2] >= 0 {
		t.Fatalf("expected a forward direction leaning +X; got %v", dir)
	}
}

func TestQuatRotation(t *testing.T) {
	q := QuatFromAxisAngle(XYZ(0, 1, 0), float32(math.Pi/2))
	vecEq(t, XYZ(0, 0, -1), q.Rotate(XYZ(1, 0, 0)), "quaternion Y rotation")

	matEq(t, HomogRotate3DY(0.6), QuatFromAxisAngle(XYZ(0, 1, 0), 0.6).Mat4(), "quaternion to matrix")
}

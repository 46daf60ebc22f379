package cpu

import (
	"math"
	"testing"

	"github.com/auriga-render/auriga/types"
)

func TestIntersectBox(t *testing.T) {
	type spec struct {
		origin  types.Vec3
		dir     types.Vec3
		min     types.Vec3
		max     types.Vec3
		expHit  bool
		expDist float32
	}
	specs := []spec{
		// Axis-aligned hit from outside
		{types.XYZ(0, 0, -5), types.XYZ(0, 0, 1), types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1), true, 4},
		// Box behind the ray
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, 1), types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1), false, 0},
		// Ray parallel to the box and offset to the side
		{types.XYZ(5, 0, -5), types.XYZ(0, 0, 1), types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1), false, 0},
		// Zero direction components on the two perpendicular axes
		{types.XYZ(0.5, 0.5, -3), types.XYZ(0, 0, 1), types.XYZ(0, 0, 0), types.XYZ(1, 1, 1), true, 3},
		// Degenerate (zero extent) box must still report a hit
		{types.XYZ(0, 0, -2), types.XYZ(0, 0, 1), types.XYZ(-1, -1, 0), types.XYZ(1, 1, 0), true, 2},
		// Zero direction component aligned with a zero extent axis (0 * Inf)
		{types.XYZ(0, 0, -2), types.XYZ(0, 0, 1), types.XYZ(-1, 0, -1), types.XYZ(1, 0, 1), true, 1},
		// Diagonal hit
		{types.XYZ(-2, -2, -2), types.XYZ(1, 1, 1), types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1), true, 1},
	}

	for index, s := range specs {
		dist := intersectBox(NewRay(s.origin, s.dir), s.min, s.max)
		if !s.expHit {
			if dist != noHit {
				t.Fatalf("[spec %d] expected a miss; got hit at distance %f", index, dist)
			}
			continue
		}
		if dist == noHit {
			t.Fatalf("[spec %d] expected a hit at distance %f; got a miss", index, s.expDist)
		}
		if math.Abs(float64(dist-s.expDist)) > 1e-4 {
			t.Fatalf("[spec %d] expected hit distance %f; got %f", index, s.expDist, dist)
		}
	}
}

func TestIntersectBoxOriginInside(t *testing.T) {
	ray := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1))
	dist := intersectBox(ray, types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))
	if dist == noHit {
		t.Fatal("expected a hit for a ray starting inside the box")
	}
	if dist > 0 {
		t.Fatalf("expected a non-positive entry distance for a ray starting inside the box; got %f", dist)
	}
}

func TestIntersectTriangle(t *testing.T) {
	v0 := types.XYZ(0, 0, 0)
	v1 := types.XYZ(1, 0, 0)
	v2 := types.XYZ(0, 1, 0)

	ray := NewRay(types.XYZ(0.25, 0.25, -1), types.XYZ(0, 0, 1))

	u, v, dist, hit := intersectTriangle(ray, v0, v1, v2, false)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(float64(dist-1.0)) > 1e-5 {
		t.Fatalf("expected hit distance 1.0; got %f", dist)
	}
	if u < 0 || v < 0 || u+v > 1 {
		t.Fatalf("expected barycentric coordinates inside the triangle; got u=%f v=%f", u, v)
	}
}

func TestIntersectTriangleWinding(t *testing.T) {
	v0 := types.XYZ(0, 0, 0)
	v1 := types.XYZ(1, 0, 0)
	v2 := types.XYZ(0, 1, 0)

	ray := NewRay(types.XYZ(0.25, 0.25, -1), types.XYZ(0, 0, 1))

	// The non-culling variant reports the same hit for either winding
	_, _, distFront, hitFront := intersectTriangle(ray, v0, v1, v2, false)
	_, _, distBack, hitBack := intersectTriangle(ray, v0, v2, v1, false)
	if !hitFront || !hitBack {
		t.Fatal("expected the non-culling variant to hit regardless of winding")
	}
	if math.Abs(float64(distFront-distBack)) > 1e-5 {
		t.Fatalf("expected matching hit distances for both windings; got %f and %f", distFront, distBack)
	}

	// The culling variant only accepts one of the two windings
	_, _, _, hitFront = intersectTriangle(ray, v0, v2, v1, true)
	_, _, _, hitBack = intersectTriangle(ray, v0, v1, v2, true)
	if !hitFront {
		t.Fatal("expected the culling variant to hit the front-facing winding")
	}
	if hitBack {
		t.Fatal("expected the culling variant to reject the back-facing winding")
	}
}

func TestIntersectTriangleParallelAndOutside(t *testing.T) {
	v0 := types.XYZ(0, 0, 0)
	v1 := types.XYZ(1, 0, 0)
	v2 := types.XYZ(0, 1, 0)

	// Ray parallel to the triangle plane
	if _, _, _, hit := intersectTriangle(NewRay(types.XYZ(0, 0, -1), types.XYZ(1, 0, 0)), v0, v1, v2, false); hit {
		t.Fatal("expected a parallel ray to miss")
	}

	// Ray through the triangle plane but outside the triangle
	if _, _, _, hit := intersectTriangle(NewRay(types.XYZ(2, 2, -1), types.XYZ(0, 0, 1)), v0, v1, v2, false); hit {
		t.Fatal("expected a ray outside the triangle to miss")
	}
}

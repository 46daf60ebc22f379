package cpu

import (
	"math"

	"github.com/auriga-render/auriga/types"
)

// Sentinel distance meaning "no intersection". It compares as never closer
// than any real hit distance.
const noHit = float32(math.MaxFloat32)

// Rays with a direction component smaller than this are treated as parallel
// to a triangle's plane.
const parallelEpsilon = 1e-5

// Hits closer than this to the ray origin are discarded so bounce rays do not
// re-intersect the surface they left from.
const minHitDist = 1e-4

// Slab test against an axis-aligned box. Returns the parametric entry
// distance, or noHit when the box is missed.
//
// The per-axis comparisons are written as explicit if statements so that a
// NaN produced by 0 * Inf (zero direction component against a zero-extent
// axis) leaves the running interval untouched instead of poisoning it.
func intersectBox(ray Ray, min, max types.Vec3) float32 {
	near := float32(math.Inf(-1))
	far := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		t0 := (min[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		t1 := (max[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		if t1 < t0 {
			t0, t1 = t1, t0
		}
		if t0 > near {
			near = t0
		}
		if t1 < far {
			far = t1
		}
	}

	if far >= near && far >= 0 {
		return near
	}
	return noHit
}

// Moeller-Trumbore ray/triangle test. Returns the barycentric UV coordinates
// and the parametric hit distance. With cullBackFaces set, triangles wound
// away from the ray are rejected; otherwise only truly parallel rays miss.
func intersectTriangle(ray Ray, v0, v1, v2 types.Vec3, cullBackFaces bool) (u, v, dist float32, hit bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	h := ray.Dir.Cross(e2)
	a := e1.Dot(h)
	if cullBackFaces {
		if a < parallelEpsilon {
			return 0, 0, 0, false
		}
	} else if a > -parallelEpsilon && a < parallelEpsilon {
		return 0, 0, 0, false
	}

	f := 1 / a
	s := ray.Origin.Sub(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = f * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	return u, v, f * e2.Dot(q), true
}

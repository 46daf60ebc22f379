package cpu

import (
	"github.com/auriga-render/auriga/tracer"
	"github.com/auriga-render/auriga/types"
)

// A ray with its precomputed reciprocal direction. Directions are not
// normalized; hit distances are parametric along Dir so they survive
// transforms into instance-local space unchanged. A zero direction component
// yields an infinite reciprocal which the slab test handles via IEEE-754
// semantics.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	InvDir types.Vec3
}

func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: types.XYZ(1/dir[0], 1/dir[1], 1/dir[2]),
	}
}

// Get the point at parametric distance t along the ray.
func (r Ray) PointAt(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Apply a transform to the ray. The origin is transformed as a point with
// homogeneous divide, the direction as a vector, and the reciprocal direction
// is recomputed.
func (r Ray) Transform(m types.Mat4) Ray {
	return NewRay(m.TransformPoint(r.Origin), m.TransformVec(r.Dir))
}

// Generate the world-space ray for a pixel. The pixel center maps to NDC
// coordinates in [-1, 1]^2 with Y flipped to match image row order; the NDC
// point unprojects through the inverse projection into a view-space direction
// which the camera-to-world matrix then places in the scene. When an rng is
// supplied the sample point is jittered by up to half a pixel for
// anti-aliasing.
func generateRay(x, y, frameW, frameH uint32, camera tracer.CameraData, rng *Rng) Ray {
	px := float32(x) + 0.5
	py := float32(y) + 0.5
	if rng != nil {
		px += rng.NextF32Range(-0.5, 0.5)
		py += rng.NextF32Range(-0.5, 0.5)
	}

	ndcX := 2*px/float32(frameW) - 1
	ndcY := 1 - 2*py/float32(frameH)

	target := camera.InvProj.Mul4x1(types.XYZW(ndcX, ndcY, 1, 1))
	viewDir := target.Vec3().Mul(1 / target[3])

	return NewRay(
		camera.View.TransformPoint(types.XYZ(0, 0, 0)),
		camera.View.TransformVec(viewDir),
	)
}

package cpu

import (
	"github.com/auriga-render/auriga/types"
)

// A hit candidate with its surface attributes interpolated and expressed in
// world space, ready for shading.
type resolvedHit struct {
	position types.Vec3
	normal   types.Vec3
	u, v     float32

	instance uint32
	material uint32
}

// Interpolate the winning triangle's vertex attributes at the hit point. The
// barycentric weights follow the intersector's convention: u weights the
// second vertex, v the third and the remainder the first. The normal moves to
// world space through the instance transform.
func (sd *sceneData) resolveHit(ray Ray, hit hitCandidate) (resolvedHit, bool) {
	if hit.miss() {
		return resolvedHit{}, false
	}

	inst := &sd.instances[hit.instance]
	prim := &sd.primitives[hit.primitive]

	v0 := &sd.vertices[inst.Mesh.Vertex+prim.Vertices[0].Index]
	v1 := &sd.vertices[inst.Mesh.Vertex+prim.Vertices[1].Index]
	v2 := &sd.vertices[inst.Mesh.Vertex+prim.Vertices[2].Index]

	w := 1 - hit.u - hit.v
	normal := v1.Normal.Mul(hit.u).
		Add(v2.Normal.Mul(hit.v)).
		Add(v0.Normal.Mul(w))

	return resolvedHit{
		position: ray.PointAt(hit.dist),
		normal:   inst.Transform.TransformVec(normal).Normalize(),
		u:        v1.U*hit.u + v2.U*hit.v + v0.U*w,
		v:        v1.V*hit.u + v2.V*hit.v + v0.V*w,
		instance: hit.instance,
		material: inst.MaterialIndex,
	}, true
}

// Procedural sky radiance for rays that leave the scene: a vertical gradient
// from white at the horizon to light blue overhead.
func skyColor(ray Ray) types.Vec3 {
	t := 0.5 * (ray.Dir.Normalize()[1] + 1)
	return types.XYZ(1, 1, 1).Mul(1 - t).Add(types.XYZ(0.5, 0.7, 1.0).Mul(t))
}

package cpu

import (
	"github.com/auriga-render/auriga/asset/scene"
)

// The closest intersection found by a traversal. Instance and primitive are
// scene.AbsentIndex until the first triangle hit is recorded.
type hitCandidate struct {
	u, v      float32
	dist      float32
	instance  uint32
	primitive uint32
}

func (hc hitCandidate) miss() bool {
	return hc.instance == scene.AbsentIndex
}

// Walk the instance BVH and return the closest triangle hit for a world-space
// ray. Traversal is stack-free: hitting an internal node's box continues at
// its entry index, missing it jumps to its exit index, and an index equal to
// the node count ends the walk. Instance leaves transform the ray into the
// instance's local space and descend into the mesh BVH window; the parametric
// distance is unaffected by the transform so comparisons stay in world units.
//
// A non-zero earlyOut stops the walk as soon as any hit closer than it is
// found. The returned hit is then not necessarily the closest one; shadow
// style occlusion queries only care that one exists. Zero disables the
// early exit.
func (sd *sceneData) traceRay(ray Ray, earlyOut float32) hitCandidate {
	hit := hitCandidate{
		dist:      noHit,
		instance:  scene.AbsentIndex,
		primitive: scene.AbsentIndex,
	}

	nodeCount := uint32(len(sd.instanceNodes))
	index := uint32(0)
	for index < nodeCount {
		node := &sd.instanceNodes[index]
		if !node.IsLeaf() {
			if intersectBox(ray, node.Min, node.Max) < hit.dist {
				index = node.EntryIndex
			} else {
				index = node.ExitIndex
			}
			continue
		}

		instIndex := node.LeafItem()
		inst := &sd.instances[instIndex]
		if intersectBox(ray, inst.Min, inst.Max) < hit.dist {
			localRay := ray.Transform(inst.InvTransform())
			sd.traceMesh(localRay, instIndex, earlyOut, &hit)
			if earlyOut > 0 && hit.dist < earlyOut {
				return hit
			}
		}
		index = node.ExitIndex
	}

	return hit
}

// Walk one instance's primitive BVH window with a local-space ray, updating
// hit whenever a closer triangle is found. Node entry/exit indices and leaf
// primitive offsets are relative to the window.
func (sd *sceneData) traceMesh(ray Ray, instIndex uint32, earlyOut float32, hit *hitCandidate) {
	inst := &sd.instances[instIndex]
	window := inst.Mesh

	index := uint32(0)
	for index < window.NodeCount {
		node := &sd.meshNodes[window.NodeOffset+index]
		if !node.IsLeaf() {
			if intersectBox(ray, node.Min, node.Max) < hit.dist {
				index = node.EntryIndex
			} else {
				index = node.ExitIndex
			}
			continue
		}

		primIndex := window.Primitive + node.LeafItem()
		prim := &sd.primitives[primIndex]
		u, v, dist, ok := intersectTriangle(
			ray,
			prim.Vertices[0].Position,
			prim.Vertices[1].Position,
			prim.Vertices[2].Position,
			sd.cullBackFaces,
		)
		if ok && dist > minHitDist && dist < hit.dist {
			hit.u = u
			hit.v = v
			hit.dist = dist
			hit.instance = instIndex
			hit.primitive = primIndex
			if earlyOut > 0 && hit.dist < earlyOut {
				return
			}
		}
		index = node.ExitIndex
	}
}

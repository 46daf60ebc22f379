package scene

import "github.com/auriga-render/auriga/types"

// A single mesh vertex. The UV components are interleaved with the position
// and normal so a vertex packs into two float4 slots.
type Vertex struct {
	Position types.Vec3
	U        float32
	Normal   types.Vec3
	V        float32
}

// A reference to a mesh vertex. The local-space position is inlined so that
// the triangle intersection test needs no extra indirection; the index into
// the vertex list is only followed when interpolating attributes for the
// winning hit.
type PrimitiveVertex struct {
	Position types.Vec3
	Index    uint32
}

// A triangle primitive.
type Primitive struct {
	Vertices [3]PrimitiveVertex
}

// Offsets of a mesh inside the global vertex/primitive/node buffers. Node
// indices inside the [NodeOffset, NodeOffset+NodeCount) window are relative
// to NodeOffset.
type MeshIndex struct {
	Vertex     uint32
	Primitive  uint32
	NodeOffset uint32
	NodeCount  uint32
}

// A placed, transformed copy of a mesh. Multiple instances may share the
// same mesh window; only the transforms differ. Min/Max bound the
// transformed mesh in world space.
type MeshInstance struct {
	Min           types.Vec3
	MaterialIndex uint32
	Max           types.Vec3

	// Local space to world space transform and its inverse-transpose.
	Transform             types.Mat4
	InvTransposeTransform types.Mat4

	Mesh MeshIndex
}

// Get the world space to local space transform for this instance.
func (mi *MeshInstance) InvTransform() types.Mat4 {
	return mi.InvTransposeTransform.Transpose()
}

package input

import (
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/types"
)

// Create a single-triangle mesh from three corners. The shared normal is
// derived from the winding; UVs map the corners to (0,0), (1,0), (0,1).
func NewTriangle(name string, v0, v1, v2 types.Vec3) *Mesh {
	normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	return &Mesh{
		Name: name,
		Vertices: []scene.Vertex{
			{Position: v0, Normal: normal, U: 0, V: 0},
			{Position: v1, Normal: normal, U: 1, V: 0},
			{Position: v2, Normal: normal, U: 0, V: 1},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// Create a quad mesh spanned by two edge vectors starting at origin. The
// normal points along the cross product of the edges.
func NewQuad(name string, origin, edgeU, edgeV types.Vec3) *Mesh {
	normal := edgeU.Cross(edgeV).Normalize()
	return &Mesh{
		Name: name,
		Vertices: []scene.Vertex{
			{Position: origin, Normal: normal, U: 0, V: 0},
			{Position: origin.Add(edgeU), Normal: normal, U: 1, V: 0},
			{Position: origin.Add(edgeU).Add(edgeV), Normal: normal, U: 1, V: 1},
			{Position: origin.Add(edgeV), Normal: normal, U: 0, V: 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Create an axis-aligned box mesh with outward facing quads.
func NewBox(name string, min, max types.Vec3) *Mesh {
	dx := types.XYZ(max[0]-min[0], 0, 0)
	dy := types.XYZ(0, max[1]-min[1], 0)
	dz := types.XYZ(0, 0, max[2]-min[2])

	sides := []*Mesh{
		NewQuad(name, types.XYZ(min[0], min[1], max[2]), dx, dy),            // front
		NewQuad(name, types.XYZ(max[0], min[1], min[2]), dx.Mul(-1), dy),    // back
		NewQuad(name, min, dz, dy),                                          // left (points -x)
		NewQuad(name, types.XYZ(max[0], min[1], max[2]), dz.Mul(-1), dy),    // right
		NewQuad(name, types.XYZ(min[0], max[1], max[2]), dx, dz.Mul(-1)),    // top
		NewQuad(name, min, dx, dz),                                          // bottom
	}

	box := &Mesh{Name: name}
	for _, side := range sides {
		base := uint32(len(box.Vertices))
		box.Vertices = append(box.Vertices, side.Vertices...)
		for _, index := range side.Indices {
			box.Indices = append(box.Indices, base+index)
		}
	}
	return box
}

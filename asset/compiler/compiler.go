package compiler

import (
	"fmt"
	"time"

	"github.com/auriga-render/auriga/asset/compiler/bvh"
	"github.com/auriga-render/auriga/asset/compiler/input"
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/log"
	"github.com/auriga-render/auriga/types"
)

var logger = log.New("compiler")

// Compile converts a raw scene description into the flat buffer layout
// consumed by the tracer kernels: global vertex/primitive lists with one
// flattened BVH window per mesh, a world-space instance list with a single
// flattened BVH over it, and materials with their texture references
// resolved to indices (or the absent sentinel).
func Compile(in *input.Scene) (*scene.Scene, error) {
	start := time.Now()

	sc := &scene.Scene{
		Camera: in.Camera,
	}
	if sc.Camera == nil {
		sc.Camera = scene.NewCamera(45)
	}

	c := &state{in: in, sc: sc}
	if err := c.compileMeshes(); err != nil {
		return nil, err
	}
	if err := c.compileMaterials(); err != nil {
		return nil, err
	}
	if err := c.compileInstances(); err != nil {
		return nil, err
	}
	sc.Textures = in.Textures

	logger.Noticef(
		"compiled scene in %d ms: %d meshes, %d instances, %d primitives",
		time.Since(start).Nanoseconds()/1e6, len(in.Meshes), len(sc.Instances), len(sc.Primitives),
	)
	return sc, nil
}

type state struct {
	in *input.Scene
	sc *scene.Scene

	// Per-mesh offsets into the global buffers plus the local space bbox,
	// needed later when instances are placed.
	meshIndices []scene.MeshIndex
	meshBBoxes  [][2]types.Vec3
}

// Concatenate all mesh data into the global vertex/primitive buffers and
// build the flattened BVH window for each mesh.
func (c *state) compileMeshes() error {
	c.meshIndices = make([]scene.MeshIndex, len(c.in.Meshes))
	c.meshBBoxes = make([][2]types.Vec3, len(c.in.Meshes))

	for meshIdx, mesh := range c.in.Meshes {
		if len(mesh.Indices) == 0 || len(mesh.Indices)%3 != 0 {
			return fmt.Errorf("compiler: mesh %q: index count %d is not a non-zero multiple of 3", mesh.Name, len(mesh.Indices))
		}

		vertexBase := uint32(len(c.sc.Vertices))
		primitiveBase := uint32(len(c.sc.Primitives))
		nodeOffset := uint32(len(c.sc.MeshNodes))

		c.sc.Vertices = append(c.sc.Vertices, mesh.Vertices...)

		volumes := make([]bvh.BoundedVolume, 0, len(mesh.Indices)/3)
		for i := 0; i < len(mesh.Indices); i += 3 {
			var prim scene.Primitive
			for corner := 0; corner < 3; corner++ {
				index := mesh.Indices[i+corner]
				if index >= uint32(len(mesh.Vertices)) {
					return fmt.Errorf("compiler: mesh %q: vertex index %d out of range", mesh.Name, index)
				}
				prim.Vertices[corner] = scene.PrimitiveVertex{
					Position: mesh.Vertices[index].Position,
					Index:    index,
				}
			}
			c.sc.Primitives = append(c.sc.Primitives, prim)
			volumes = append(volumes, triangleVolume(prim))
		}

		// The mesh BVH leaves reference primitives relative to the mesh;
		// traversal adds the primitive base from the instance window.
		c.sc.MeshNodes = append(c.sc.MeshNodes, bvh.Build(volumes)...)

		c.meshIndices[meshIdx] = scene.MeshIndex{
			Vertex:     vertexBase,
			Primitive:  primitiveBase,
			NodeOffset: nodeOffset,
			NodeCount:  uint32(len(c.sc.MeshNodes)) - nodeOffset,
		}
		c.meshBBoxes[meshIdx] = volumesBBox(volumes)
	}
	return nil
}

// Resolve material texture references.
func (c *state) compileMaterials() error {
	c.sc.Materials = make([]scene.Material, len(c.in.Materials))
	for matIdx, mat := range c.in.Materials {
		out := scene.NewMaterial()
		out.BaseColor = mat.BaseColor
		out.Emissive = mat.Emissive
		out.Roughness = mat.Roughness
		out.Metallic = mat.Metallic
		out.Reflectance = mat.Reflectance

		var err error
		if out.BaseColorTexture, err = c.resolveTexture(mat.Name, mat.BaseColorTexture); err != nil {
			return err
		}
		if out.EmissiveTexture, err = c.resolveTexture(mat.Name, mat.EmissiveTexture); err != nil {
			return err
		}
		c.sc.Materials[matIdx] = out
	}
	return nil
}

func (c *state) resolveTexture(matName string, texIdx int) (uint32, error) {
	if texIdx == input.NoTexture {
		return scene.AbsentIndex, nil
	}
	if texIdx < 0 || texIdx >= len(c.in.Textures) {
		return 0, fmt.Errorf("compiler: material %q: texture index %d out of range", matName, texIdx)
	}
	return uint32(texIdx), nil
}

// Place instances in world space and build the top level BVH over them.
func (c *state) compileInstances() error {
	c.sc.Instances = make([]scene.MeshInstance, len(c.in.Instances))

	volumes := make([]bvh.BoundedVolume, len(c.in.Instances))
	for instIdx, inst := range c.in.Instances {
		if inst.MeshIndex < 0 || inst.MeshIndex >= len(c.in.Meshes) {
			return fmt.Errorf("compiler: instance %d: mesh index %d out of range", instIdx, inst.MeshIndex)
		}
		if inst.MaterialIndex < 0 || inst.MaterialIndex >= len(c.in.Materials) {
			return fmt.Errorf("compiler: instance %d: material index %d out of range", instIdx, inst.MaterialIndex)
		}

		worldBBox := transformBBox(c.meshBBoxes[inst.MeshIndex], inst.Transform)
		c.sc.Instances[instIdx] = scene.MeshInstance{
			Min:                   worldBBox[0],
			Max:                   worldBBox[1],
			MaterialIndex:         uint32(inst.MaterialIndex),
			Transform:             inst.Transform,
			InvTransposeTransform: inst.Transform.Inv().Transpose(),
			Mesh:                  c.meshIndices[inst.MeshIndex],
		}
		volumes[instIdx] = instanceVolume(worldBBox)
	}

	c.sc.InstanceNodes = bvh.Build(volumes)
	return nil
}

// Compute the world space bounding box of a local space box under the given
// transform by transforming its 8 corners.
func transformBBox(bbox [2]types.Vec3, transform types.Mat4) [2]types.Vec3 {
	var out [2]types.Vec3
	for corner := 0; corner < 8; corner++ {
		local := types.XYZ(
			pick(corner&1 == 0, bbox[0][0], bbox[1][0]),
			pick(corner&2 == 0, bbox[0][1], bbox[1][1]),
			pick(corner&4 == 0, bbox[0][2], bbox[1][2]),
		)
		world := transform.TransformPoint(local)
		if corner == 0 {
			out[0], out[1] = world, world
			continue
		}
		out[0] = types.MinVec3(out[0], world)
		out[1] = types.MaxVec3(out[1], world)
	}
	return out
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

func volumesBBox(volumes []bvh.BoundedVolume) [2]types.Vec3 {
	bbox := volumes[0].BBox()
	for _, vol := range volumes[1:] {
		volBBox := vol.BBox()
		bbox[0] = types.MinVec3(bbox[0], volBBox[0])
		bbox[1] = types.MaxVec3(bbox[1], volBBox[1])
	}
	return bbox
}

// Adapter exposing a triangle primitive as a bounded volume.
type triangleVolume scene.Primitive

func (t triangleVolume) BBox() [2]types.Vec3 {
	bbox := [2]types.Vec3{t.Vertices[0].Position, t.Vertices[0].Position}
	for _, vert := range t.Vertices[1:] {
		bbox[0] = types.MinVec3(bbox[0], vert.Position)
		bbox[1] = types.MaxVec3(bbox[1], vert.Position)
	}
	return bbox
}

func (t triangleVolume) Center() types.Vec3 {
	return t.Vertices[0].Position.Add(t.Vertices[1].Position).Add(t.Vertices[2].Position).Mul(1.0 / 3.0)
}

// Adapter exposing a world space instance bbox as a bounded volume.
type instanceVolume [2]types.Vec3

func (iv instanceVolume) BBox() [2]types.Vec3 {
	return [2]types.Vec3(iv)
}

func (iv instanceVolume) Center() types.Vec3 {
	return iv[0].Add(iv[1]).Mul(0.5)
}

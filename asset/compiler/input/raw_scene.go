package input

import (
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/asset/texture"
	"github.com/auriga-render/auriga/types"
)

// Marks a texture reference as unset.
const NoTexture = -1

// The raw, editable scene description handed to the compiler. Indices
// reference positions inside the various lists; the compiler validates them
// and converts the description into the flat buffers the tracer consumes.
type Scene struct {
	Meshes    []*Mesh
	Instances []Instance
	Materials []Material
	Textures  []*texture.Texture
	Camera    *scene.Camera
}

// A triangle mesh in local space. Indices is a flat triangle list; its
// length must be a multiple of 3.
type Mesh struct {
	Name     string
	Vertices []scene.Vertex
	Indices  []uint32
}

// One placement of a mesh inside the scene.
type Instance struct {
	MeshIndex     int
	MaterialIndex int
	Transform     types.Mat4
}

// A material description. Texture fields index into the scene texture list;
// NoTexture leaves the factor unmodulated.
type Material struct {
	Name string

	BaseColor        types.Vec4
	BaseColorTexture int

	Emissive        types.Vec4
	EmissiveTexture int

	Roughness   float32
	Metallic    float32
	Reflectance float32
}

// Create a diffuse material with the given base color.
func Diffuse(name string, baseColor types.Vec3) Material {
	return Material{
		Name:             name,
		BaseColor:        baseColor.Vec4(1),
		BaseColorTexture: NoTexture,
		EmissiveTexture:  NoTexture,
		Roughness:        0.5,
		Reflectance:      0.5,
	}
}

// Create an emissive material radiating the given color scaled by power.
func Emissive(name string, color types.Vec3, power float32) Material {
	mat := Diffuse(name, types.XYZ(0, 0, 0))
	mat.Emissive = color.Mul(power).Vec4(1)
	return mat
}

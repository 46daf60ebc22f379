package scene

import "github.com/auriga-render/auriga/types"

// Surface material. Each factor is optionally modulated by a texture lookup;
// a texture index equal to AbsentIndex means "factor only".
type Material struct {
	BaseColor        types.Vec4
	BaseColorTexture uint32

	Emissive        types.Vec4
	EmissiveTexture uint32

	Roughness                float32
	Metallic                 float32
	MetallicRoughnessTexture uint32

	Reflectance   float32
	NormalTexture uint32
}

// Create a material with sane defaults: opaque white base color, no emission
// and no bound textures.
func NewMaterial() Material {
	return Material{
		BaseColor:                types.XYZW(1, 1, 1, 1),
		BaseColorTexture:         AbsentIndex,
		EmissiveTexture:          AbsentIndex,
		Roughness:                0.5,
		MetallicRoughnessTexture: AbsentIndex,
		Reflectance:              0.5,
		NormalTexture:            AbsentIndex,
	}
}

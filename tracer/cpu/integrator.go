package cpu

import (
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/types"
)

// Trace one full path for a pixel sample and return the gathered radiance.
//
// Each bounce traces the current ray, adds the hit material's emission
// weighted by the throughput accumulated on previous bounces, folds the
// material albedo into the throughput and scatters a new ray from the hit
// point. A miss ends the path; whether the sky gradient contributes on a miss
// is controlled by the skyOnMiss option.
func (sd *sceneData) samplePath(ray Ray, rng *Rng, maxBounces uint32) types.Vec3 {
	light := types.XYZ(0, 0, 0)
	throughput := types.XYZ(1, 1, 1)

	for bounce := uint32(0); bounce < maxBounces; bounce++ {
		hit, ok := sd.resolveHit(ray, sd.traceRay(ray, 0))
		if !ok {
			if sd.skyOnMiss {
				light = light.Add(throughput.MulVec(skyColor(ray)))
			}
			break
		}

		mat := &sd.materials[hit.material]

		// Emission is weighted by the throughput as of entering this
		// bounce, before this surface's albedo is folded in.
		emissive := mat.Emissive.Vec3()
		if mat.EmissiveTexture != scene.AbsentIndex {
			emissive = emissive.MulVec(sd.textures[mat.EmissiveTexture].Sample(hit.u, hit.v))
		}
		light = light.Add(emissive.MulVec(throughput))

		albedo := mat.BaseColor.Vec3()
		if mat.BaseColorTexture != scene.AbsentIndex {
			albedo = albedo.MulVec(sd.textures[mat.BaseColorTexture].Sample(hit.u, hit.v))
		}
		throughput = throughput.MulVec(albedo)

		origin := hit.position.Add(hit.normal.Mul(minHitDist))
		dir := hit.normal.Add(rng.NextUnitVec()).Normalize()
		ray = NewRay(origin, dir)
	}

	return light
}

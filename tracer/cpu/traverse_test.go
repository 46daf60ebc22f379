package cpu

import (
	"math"
	"testing"

	"github.com/auriga-render/auriga/asset/compiler"
	"github.com/auriga-render/auriga/asset/compiler/input"
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/types"
)

// Compile a raw scene and wrap its buffers the way the tracer does.
func makeSceneData(t *testing.T, in *input.Scene) *sceneData {
	t.Helper()
	sc, err := compiler.Compile(in)
	if err != nil {
		t.Fatalf("scene compilation failed: %v", err)
	}

	return &sceneData{
		instanceNodes: sc.InstanceNodes,
		instances:     sc.Instances,
		meshNodes:     sc.MeshNodes,
		vertices:      sc.Vertices,
		primitives:    sc.Primitives,
		materials:     sc.Materials,
		textures:      sc.Textures,
		skyOnMiss:     true,
	}
}

func TestTraverseSingleTriangleMatchesDirectIntersection(t *testing.T) {
	transform := types.Translate3D(5, -2, 3)
	sd := makeSceneData(t, &input.Scene{
		Meshes: []*input.Mesh{
			input.NewTriangle("tri", types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)),
		},
		Materials: []input.Material{input.Diffuse("mat", types.XYZ(1, 1, 1))},
		Instances: []input.Instance{
			{MeshIndex: 0, MaterialIndex: 0, Transform: transform},
		},
	})

	ray := NewRay(types.XYZ(5.25, -1.75, 0), types.XYZ(0, 0, 1))

	hit := sd.traceRay(ray, 0)
	if hit.miss() {
		t.Fatal("expected traversal to find the triangle")
	}

	// The same ray transformed into the instance's local space must produce
	// an identical hit when tested directly against the triangle.
	localRay := ray.Transform(sd.instances[0].InvTransform())
	u, v, dist, ok := intersectTriangle(
		localRay,
		types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0),
		false,
	)
	if !ok {
		t.Fatal("expected the direct intersection to hit")
	}

	if math.Abs(float64(hit.dist-dist)) > 1e-5 {
		t.Fatalf("expected traversal distance %f to match direct intersection distance %f", dist, hit.dist)
	}
	if math.Abs(float64(hit.u-u)) > 1e-5 || math.Abs(float64(hit.v-v)) > 1e-5 {
		t.Fatalf("expected matching barycentric coordinates; got (%f, %f) and (%f, %f)", hit.u, hit.v, u, v)
	}
	if hit.instance != 0 || hit.primitive != 0 {
		t.Fatalf("expected hit on instance 0 primitive 0; got instance %d primitive %d", hit.instance, hit.primitive)
	}
}

func TestTraverseMiss(t *testing.T) {
	sd := makeSceneData(t, &input.Scene{
		Meshes: []*input.Mesh{
			input.NewBox("box", types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)),
		},
		Materials: []input.Material{input.Diffuse("mat", types.XYZ(1, 1, 1))},
		Instances: []input.Instance{
			{MeshIndex: 0, MaterialIndex: 0, Transform: types.Ident4()},
		},
	})

	// Aim away from the box
	hit := sd.traceRay(NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, -1)), 0)
	if !hit.miss() {
		t.Fatal("expected a miss")
	}
	if hit.instance != scene.AbsentIndex || hit.primitive != scene.AbsentIndex {
		t.Fatalf("expected absent instance and primitive indices; got %d and %d", hit.instance, hit.primitive)
	}
	if hit.dist != noHit {
		t.Fatalf("expected the no-hit sentinel distance; got %f", hit.dist)
	}
}

func TestTraverseClosestInstanceWins(t *testing.T) {
	// Two instances of the same quad mesh at different depths. The mesh BVH
	// window is shared; only the transforms differ.
	sd := makeSceneData(t, &input.Scene{
		Meshes: []*input.Mesh{
			input.NewQuad("quad", types.XYZ(-1, -1, 0), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0)),
		},
		Materials: []input.Material{input.Diffuse("mat", types.XYZ(1, 1, 1))},
		Instances: []input.Instance{
			{MeshIndex: 0, MaterialIndex: 0, Transform: types.Translate3D(0, 0, 10)},
			{MeshIndex: 0, MaterialIndex: 0, Transform: types.Translate3D(0, 0, 4)},
		},
	})

	hit := sd.traceRay(NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1)), 0)
	if hit.miss() {
		t.Fatal("expected a hit")
	}
	if hit.instance != 1 {
		t.Fatalf("expected the closer instance 1 to win; got instance %d", hit.instance)
	}
	if math.Abs(float64(hit.dist-4)) > 1e-4 {
		t.Fatalf("expected hit distance 4; got %f", hit.dist)
	}
}

func TestTraverseScaledInstanceKeepsWorldDistances(t *testing.T) {
	// A scaled instance must report distances in world ray units.
	sd := makeSceneData(t, &input.Scene{
		Meshes: []*input.Mesh{
			input.NewQuad("quad", types.XYZ(-1, -1, 0), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0)),
		},
		Materials: []input.Material{input.Diffuse("mat", types.XYZ(1, 1, 1))},
		Instances: []input.Instance{
			{
				MeshIndex:     0,
				MaterialIndex: 0,
				Transform:     types.Translate3D(0, 0, 6).Mul4(types.Scale3D(3, 3, 1)),
			},
		},
	})

	hit := sd.traceRay(NewRay(types.XYZ(2, 2, 0), types.XYZ(0, 0, 1)), 0)
	if hit.miss() {
		t.Fatal("expected a hit on the scaled quad")
	}
	if math.Abs(float64(hit.dist-6)) > 1e-4 {
		t.Fatalf("expected hit distance 6; got %f", hit.dist)
	}
}

func TestTraverseEarlyOut(t *testing.T) {
	// Two instances of the same quad at z 4 and z 10. The builder orders the
	// leaves by z so the z 4 instance is always visited first.
	sd := makeSceneData(t, &input.Scene{
		Meshes: []*input.Mesh{
			input.NewQuad("quad", types.XYZ(-1, -1, 0), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0)),
		},
		Materials: []input.Material{input.Diffuse("mat", types.XYZ(1, 1, 1))},
		Instances: []input.Instance{
			{MeshIndex: 0, MaterialIndex: 0, Transform: types.Translate3D(0, 0, 4)},
			{MeshIndex: 0, MaterialIndex: 0, Transform: types.Translate3D(0, 0, 10)},
		},
	})

	// Looking down -z from beyond both quads the closest hit is the z 10
	// quad at distance 10; the first visited quad sits at distance 16.
	ray := NewRay(types.XYZ(0, 0, 20), types.XYZ(0, 0, -1))

	hit := sd.traceRay(ray, 0)
	if hit.miss() || math.Abs(float64(hit.dist-10)) > 1e-4 {
		t.Fatalf("expected the full traversal to find the closest hit at distance 10; got %f", hit.dist)
	}
	if hit.instance != 1 {
		t.Fatalf("expected the full traversal to hit instance 1; got %d", hit.instance)
	}

	// A threshold below every hit never triggers and the walk stays exhaustive
	hit = sd.traceRay(ray, 3)
	if hit.miss() || math.Abs(float64(hit.dist-10)) > 1e-4 {
		t.Fatalf("expected an unreachable threshold to leave the walk exhaustive; got %f", hit.dist)
	}

	// A threshold above both hits stops the walk at the first recorded hit,
	// which is the farther instance in tree order.
	hit = sd.traceRay(ray, 20)
	if hit.miss() {
		t.Fatal("expected the early out walk to report a hit")
	}
	if hit.instance != 0 || math.Abs(float64(hit.dist-16)) > 1e-4 {
		t.Fatalf("expected the walk to stop at the first visited instance (distance 16); got instance %d at %f", hit.instance, hit.dist)
	}
}

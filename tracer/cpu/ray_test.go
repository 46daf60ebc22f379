package cpu

import (
	"math"
	"testing"

	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/tracer"
	"github.com/auriga-render/auriga/types"
)

func testCameraData(position, lookAt types.Vec3) tracer.CameraData {
	camera := scene.NewCamera(90)
	camera.Position = position
	camera.LookAt = lookAt
	camera.Up = types.XYZ(0, 1, 0)
	camera.SetupProjection(1)

	return tracer.CameraData{
		View:    camera.CameraToWorld(),
		InvProj: camera.InvProjMat(),
	}
}

func TestGenerateRay(t *testing.T) {
	camera := testCameraData(types.XYZ(1, 2, 3), types.XYZ(1, 2, 13))

	// The center ray of an odd-sized frame points straight at the look
	// target.
	ray := generateRay(4, 4, 9, 9, camera, nil)
	if ray.Origin.Sub(types.XYZ(1, 2, 3)).Len() > 1e-4 {
		t.Fatalf("expected ray origin at the camera position; got %v", ray.Origin)
	}
	dir := ray.Dir.Normalize()
	if dir.Sub(types.XYZ(0, 0, 1)).Len() > 1e-4 {
		t.Fatalf("expected the center ray to point at the look target; got %v", dir)
	}

	// The reciprocal direction tracks the direction componentwise
	for axis := 0; axis < 3; axis++ {
		if ray.Dir[axis] == 0 {
			if !math.IsInf(float64(ray.InvDir[axis]), 0) {
				t.Fatalf("expected an infinite reciprocal on axis %d; got %f", axis, ray.InvDir[axis])
			}
			continue
		}
		if math.Abs(float64(ray.InvDir[axis]*ray.Dir[axis]-1)) > 1e-4 {
			t.Fatalf("expected InvDir[%d] to be the reciprocal of Dir[%d]", axis, axis)
		}
	}
}

func TestGenerateRayImageOrientation(t *testing.T) {
	camera := testCameraData(types.XYZ(0, 0, 0), types.XYZ(0, 0, -10))

	// Lower image rows (larger y) map to lower world space directions and
	// pixels right of center to +X.
	top := generateRay(5, 0, 11, 11, camera, nil)
	bottom := generateRay(5, 10, 11, 11, camera, nil)
	if top.Dir.Normalize()[1] <= bottom.Dir.Normalize()[1] {
		t.Fatal("expected the top image row to map above the bottom row")
	}

	left := generateRay(0, 5, 11, 11, camera, nil)
	right := generateRay(10, 5, 11, 11, camera, nil)
	if left.Dir.Normalize()[0] >= right.Dir.Normalize()[0] {
		t.Fatal("expected the left image column to map left of the right column")
	}
}

func TestGenerateRayJitter(t *testing.T) {
	camera := testCameraData(types.XYZ(0, 0, 0), types.XYZ(0, 0, -10))

	rng := SeedFor(3, 4)
	jittered := generateRay(5, 5, 11, 11, camera, &rng)
	center := generateRay(5, 5, 11, 11, camera, nil)

	// Jittered rays stay inside the pixel footprint but rarely match the
	// exact center.
	delta := jittered.Dir.Normalize().Sub(center.Dir.Normalize()).Len()
	if delta == 0 {
		t.Fatal("expected the jittered ray to differ from the center ray")
	}

	pixelStep := generateRay(6, 5, 11, 11, camera, nil).Dir.Normalize().Sub(center.Dir.Normalize()).Len()
	if delta > pixelStep {
		t.Fatalf("expected the jitter to stay within a pixel footprint; moved %f with a pixel step of %f", delta, pixelStep)
	}
}

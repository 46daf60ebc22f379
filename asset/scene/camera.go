package scene

import "github.com/auriga-render/auriga/types"

// The camera type controls the scene camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3
	Pitch    float32
	Yaw      float32

	ViewMat types.Mat4
	ProjMat types.Mat4

	// Camera FOV in degrees.
	FOV float32
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		ViewMat:  types.Ident4(),
		ProjMat:  types.Ident4(),
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
	}
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.ProjMat = types.Perspective4(c.FOV, aspect, 1, 1000)
	c.Update()
}

// Update the view matrix after a change to the camera position or
// orientation. Pitch/yaw deltas are consumed and applied to the look-at
// direction.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	if c.Pitch != 0 || c.Yaw != 0 {
		pitchAxis := dir.Cross(c.Up)
		pitchQuat := types.QuatFromAxisAngle(pitchAxis, c.Pitch)
		yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)

		orientQuat := pitchQuat.Mul(yawQuat).Normalize()

		dir = orientQuat.Rotate(dir)
		c.LookAt = c.Position.Add(dir)
		c.Pitch = 0
		c.Yaw = 0
	}

	c.ViewMat = types.LookAtV(c.Position, c.LookAt, c.Up)
}

// Get the view space to world space transform. This is what the ray
// generator consumes: the world ray origin is the transformed view space
// origin and ray directions are transformed view space directions.
func (c *Camera) CameraToWorld() types.Mat4 {
	return c.ViewMat.Inv()
}

// Get the inverse projection matrix used to unproject NDC coordinates into
// view space directions.
func (c *Camera) InvProjMat() types.Mat4 {
	return c.ProjMat.Inv()
}

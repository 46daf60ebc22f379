package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of indirect bounces.
	NumBounces uint32

	// Number of samples per pixel per frame.
	SamplesPerPixel uint32

	// Exposure for tonemapping.
	Exposure float32

	// Seed folded into every pixel's random stream. Zero keeps the
	// default per-pixel seeding.
	Seed uint32
}

package renderer

import (
	"image"

	"github.com/auriga-render/auriga/asset/scene"
)

type Renderer interface {
	// Render frame.
	Render() error

	// Mutate the camera and restart sample accumulation from the new
	// viewpoint.
	UpdateCamera(update func(camera *scene.Camera))

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats

	// Get the rendered frame. The returned image shares the renderer's
	// framebuffer and is only valid until the next Render call.
	Frame() *image.RGBA
}

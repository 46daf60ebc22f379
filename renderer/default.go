package renderer

import (
	"image"
	"time"

	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/log"
	"github.com/auriga-render/auriga/tracer"
)

// A headless renderer that drives a pool of tracers and accumulates their
// output into a shared framebuffer.
type defaultRenderer struct {
	logger log.Logger

	options Options

	sceneData *scene.Scene
	camera    *scene.Camera

	tracers          []tracer.Tracer
	scheduler        tracer.BlockScheduler
	blockAssignments []uint32

	// Shared render targets. Tracers write disjoint row ranges.
	accumBuffer []float32
	frameBuffer []uint8

	// Number of frames accumulated from the current camera position.
	frameCount uint32

	lastFrameTime int64
	stats         FrameStats
}

// Create a new headless renderer using the specified block scheduler and
// tracer pool.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, tracers []tracer.Tracer, opts Options) (Renderer, error) {
	if len(tracers) == 0 {
		return nil, ErrNoTracers
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameDims
	}
	if opts.SamplesPerPixel == 0 {
		opts.SamplesPerPixel = 1
	}
	if opts.Exposure <= 0 {
		opts.Exposure = 1
	}

	r := &defaultRenderer{
		logger:      log.New("renderer"),
		options:     opts,
		sceneData:   sc,
		camera:      sc.Camera,
		tracers:     tracers,
		scheduler:   scheduler,
		accumBuffer: make([]float32, opts.FrameW*opts.FrameH*4),
		frameBuffer: make([]uint8, opts.FrameW*opts.FrameH*4),
		stats: FrameStats{
			Tracers: make([]TracerStat, len(tracers)),
		},
	}

	r.camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))

	for _, tr := range tracers {
		if err := tr.Setup(opts.FrameW, opts.FrameH, r.accumBuffer, r.frameBuffer); err != nil {
			r.Close()
			return nil, err
		}
		tr.AppendChange(tracer.SetSceneData, sc)
		tr.AppendChange(tracer.UpdateCamera, cameraData(r.camera))
	}

	return r, nil
}

func cameraData(camera *scene.Camera) tracer.CameraData {
	return tracer.CameraData{
		View:    camera.CameraToWorld(),
		InvProj: camera.InvProjMat(),
	}
}

// Render the next frame, accumulating on top of previous frames from the
// same camera position.
func (r *defaultRenderer) Render() error {
	r.frameCount++
	return r.renderFrame(r.frameCount)
}

func (r *defaultRenderer) renderFrame(frameCount uint32) error {
	start := time.Now()
	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH, r.lastFrameTime)

	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32 = 0
	for idx, tr := range r.tracers {
		tr.Enqueue(tracer.BlockRequest{
			BlockY:          blockY,
			BlockH:          r.blockAssignments[idx],
			SamplesPerPixel: r.options.SamplesPerPixel,
			MaxBounces:      r.options.NumBounces,
			Exposure:        r.options.Exposure,
			Seed:            r.options.Seed,
			FrameCount:      frameCount,
			DoneChan:        doneChan,
			ErrChan:         errChan,
		})
		blockY += r.blockAssignments[idx]
	}

	// Wait for all tracers to report back
	var pendingRows = r.options.FrameH
	for pendingRows > 0 {
		select {
		case completedRows := <-doneChan:
			pendingRows -= completedRows
		case err := <-errChan:
			return err
		}
	}

	r.lastFrameTime = time.Since(start).Nanoseconds()
	r.collectStats()
	return nil
}

// Move the camera and restart sample accumulation.
func (r *defaultRenderer) UpdateCamera(update func(camera *scene.Camera)) {
	update(r.camera)
	r.camera.Update()

	for _, tr := range r.tracers {
		tr.AppendChange(tracer.UpdateCamera, cameraData(r.camera))
	}
	r.frameCount = 0
}

func (r *defaultRenderer) collectStats() {
	r.stats.RenderTime = time.Duration(r.lastFrameTime)
	for idx, tr := range r.tracers {
		trStats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:         tr.Id(),
			IsPrimary:  idx == 0,
			Rows:       trStats.BlockH,
			FrameShare: float32(trStats.BlockH) / float32(r.options.FrameH),
			RenderTime: time.Duration(trStats.BlockTime),
		}
	}
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Get the rendered frame as an image sharing the framebuffer storage.
func (r *defaultRenderer) Frame() *image.RGBA {
	return &image.RGBA{
		Pix:    r.frameBuffer,
		Stride: int(r.options.FrameW) * 4,
		Rect:   image.Rect(0, 0, int(r.options.FrameW), int(r.options.FrameH)),
	}
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
}

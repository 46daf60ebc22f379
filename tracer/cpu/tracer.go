package cpu

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/asset/texture"
	"github.com/auriga-render/auriga/log"
	"github.com/auriga-render/auriga/tracer"
)

// Tracer options.
type Options struct {
	// Add the sky gradient to paths that leave the scene. Without it a
	// miss terminates the path with no further contribution.
	SkyOnMiss bool

	// Reject triangles facing away from the ray.
	CullBackFaces bool

	// Number of goroutines used to render a block. Defaults to the number
	// of logical CPUs.
	NumWorkers int
}

func DefaultOptions() Options {
	return Options{
		SkyOnMiss:  true,
		NumWorkers: runtime.NumCPU(),
	}
}

// The flat read-only buffers shared by every pixel invocation for the
// duration of a frame, together with the camera state and shading options.
type sceneData struct {
	instanceNodes []scene.BvhNode
	instances     []scene.MeshInstance
	meshNodes     []scene.BvhNode
	vertices      []scene.Vertex
	primitives    []scene.Primitive
	materials     []scene.Material
	textures      []*texture.Texture

	camera tracer.CameraData

	skyOnMiss     bool
	cullBackFaces bool
}

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// Options applied to the scene data on upload.
	options Options

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.ChangeType]interface{}

	// The uploaded scene buffers.
	sceneData *sceneData

	// The render target shared with the renderer.
	frameW      uint32
	frameH      uint32
	accumBuffer []float32
	frameBuffer []uint8

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered frame.
	stats *tracer.Stats
}

// Create a new cpu tracer.
func NewTracer(id string, options Options) tracer.Tracer {
	if options.NumWorkers <= 0 {
		options.NumWorkers = runtime.NumCPU()
	}

	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		options:      options,
		updateBuffer: make(map[tracer.ChangeType]interface{}, 0),
		// A single-slot buffer so a request enqueued right after the
		// previous block completes is never dropped while the worker is
		// on its way back into the select.
		blockReqChan: make(chan tracer.BlockRequest, 1),
		stats:        &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Get the computation speed estimate. The cpu tracer is the baseline.
func (tr *cpuTracer) SpeedEstimate() float32 {
	return float32(tr.options.NumWorkers)
}

// Attach the tracer to its render target and start the request worker.
func (tr *cpuTracer) Setup(frameW, frameH uint32, accumBuffer []float32, frameBuffer []uint8) error {
	tr.Lock()
	defer tr.Unlock()

	if want := int(frameW * frameH * 4); len(accumBuffer) != want || len(frameBuffer) != want {
		return fmt.Errorf("cpu tracer: buffer size mismatch for %dx%d frame", frameW, frameH)
	}

	tr.frameW = frameW
	tr.frameH = frameH
	tr.accumBuffer = accumBuffer
	tr.frameBuffer = frameBuffer

	if tr.closeChan == nil {
		tr.startWorker()
	}
	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
	}
	tr.sceneData = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		// drop the request if worker is not listening
		tr.logger.Error("request processor did not receive block request")
	}
}

// Append a change to the tracer's update buffer.
func (tr *cpuTracer) AppendChange(changeType tracer.ChangeType, data interface{}) {
	tr.Lock()
	defer tr.Unlock()
	tr.updateBuffer[changeType] = data
}

// Apply all pending changes from the update buffer.
func (tr *cpuTracer) ApplyPendingChanges() error {
	tr.Lock()
	defer tr.Unlock()
	return tr.commitChanges()
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Commit queued changes. Called with the tracer lock held.
//
// Scene uploads always land first; the remaining change types target the
// uploaded scene data and must not depend on map iteration order.
func (tr *cpuTracer) commitChanges() error {
	if data, exists := tr.updateBuffer[tracer.SetSceneData]; exists {
		tr.uploadSceneData(data.(*scene.Scene))
		delete(tr.updateBuffer, tracer.SetSceneData)
	}

	for changeType, data := range tr.updateBuffer {
		switch changeType {
		case tracer.UpdateCamera:
			if tr.sceneData == nil {
				return fmt.Errorf("cpu tracer: camera update with no scene data")
			}
			tr.sceneData.camera = data.(tracer.CameraData)
		default:
			return fmt.Errorf("cpu tracer: unsupported change type %d", changeType)
		}
	}

	tr.updateBuffer = make(map[tracer.ChangeType]interface{}, 0)
	return nil
}

func (tr *cpuTracer) uploadSceneData(sc *scene.Scene) {
	camera := tracer.CameraData{}
	if tr.sceneData != nil {
		camera = tr.sceneData.camera
	}

	tr.sceneData = &sceneData{
		instanceNodes: sc.InstanceNodes,
		instances:     sc.Instances,
		meshNodes:     sc.MeshNodes,
		vertices:      sc.Vertices,
		primitives:    sc.Primitives,
		materials:     sc.Materials,
		textures:      sc.Textures,
		camera:        camera,
		skyOnMiss:     tr.options.SkyOnMiss,
		cullBackFaces: tr.options.CullBackFaces,
	}
}

// Spawn a go-routine to process block render requests.
func (tr *cpuTracer) startWorker() {
	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	tr.closeChan = make(chan struct{}, 0)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				startTime = time.Now()

				// Apply any pending changes
				tr.Lock()
				err = tr.commitChanges()
				tr.Unlock()
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				err = tr.renderBlock(&blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				tr.stats.BlockH = blockReq.BlockH
				tr.stats.BlockTime = time.Since(startTime).Nanoseconds()

				blockReq.DoneChan <- blockReq.BlockH
			case <-tr.closeChan:
				// Ack close
				tr.closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render a block by splitting its rows across the worker pool. Each row is
// rendered independently; no state is shared between pixels.
func (tr *cpuTracer) renderBlock(blockReq *tracer.BlockRequest) error {
	sd := tr.sceneData
	if sd == nil {
		return ErrNoSceneData
	}
	if blockReq.SamplesPerPixel == 0 {
		blockReq.SamplesPerPixel = 1
	}

	rowChan := make(chan uint32, blockReq.BlockH)
	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		rowChan <- y
	}
	close(rowChan)

	var g errgroup.Group
	for worker := 0; worker < tr.options.NumWorkers; worker++ {
		g.Go(func() error {
			for y := range rowChan {
				tr.renderRow(sd, blockReq, y)
			}
			return nil
		})
	}
	return g.Wait()
}

func (tr *cpuTracer) renderRow(sd *sceneData, blockReq *tracer.BlockRequest, y uint32) {
	for x := uint32(0); x < tr.frameW; x++ {
		rng := SeedFor(x, y)
		rng.MixSeed(blockReq.Seed)
		// Later accumulation frames draw a fresh sample sequence; the
		// first frame keeps the bare per-pixel stream.
		if blockReq.FrameCount > 1 {
			rng.MixSeed(blockReq.FrameCount)
		}

		var r, g, b float32
		for sample := uint32(0); sample < blockReq.SamplesPerPixel; sample++ {
			// Skip the anti-aliasing jitter when tracing a single
			// sample so the ray passes through the pixel center.
			jitterRng := &rng
			if blockReq.SamplesPerPixel == 1 {
				jitterRng = nil
			}

			ray := generateRay(x, y, tr.frameW, tr.frameH, sd.camera, jitterRng)
			sampleLight := sd.samplePath(ray, &rng, blockReq.MaxBounces)
			r += sampleLight[0]
			g += sampleLight[1]
			b += sampleLight[2]
		}

		offset := (y*tr.frameW + x) * 4
		if blockReq.FrameCount <= 1 {
			tr.accumBuffer[offset] = r
			tr.accumBuffer[offset+1] = g
			tr.accumBuffer[offset+2] = b
			tr.accumBuffer[offset+3] = 1
		} else {
			tr.accumBuffer[offset] += r
			tr.accumBuffer[offset+1] += g
			tr.accumBuffer[offset+2] += b
		}

		samples := float32(blockReq.FrameCount * blockReq.SamplesPerPixel)
		tr.frameBuffer[offset] = tonemap(tr.accumBuffer[offset]/samples, blockReq.Exposure)
		tr.frameBuffer[offset+1] = tonemap(tr.accumBuffer[offset+1]/samples, blockReq.Exposure)
		tr.frameBuffer[offset+2] = tonemap(tr.accumBuffer[offset+2]/samples, blockReq.Exposure)
		tr.frameBuffer[offset+3] = 0xff
	}
}

// Simple Reinhard operator mapping HDR radiance to an 8-bit channel value.
func tonemap(value, exposure float32) uint8 {
	scaled := value * exposure
	if scaled <= 0 {
		return 0
	}
	mapped := scaled / (1 + scaled)
	return uint8(mapped*255.0 + 0.5)
}

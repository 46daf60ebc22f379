package renderer

import "time"

// Per-tracer accounting for the last rendered frame.
type TracerStat struct {
	// The id of the tracer the rows were assigned to.
	Id string

	// Set on the first tracer of the pool.
	IsPrimary bool

	// Rows the tracer rendered and the share of the frame they represent,
	// in [0, 1].
	Rows       uint32
	FrameShare float32

	// Time the tracer spent on its rows.
	RenderTime time.Duration
}

// Statistics for the last rendered frame.
type FrameStats struct {
	// Per-tracer breakdown in pool order.
	Tracers []TracerStat

	// Wall clock time for the whole frame, including scheduling overhead.
	RenderTime time.Duration
}

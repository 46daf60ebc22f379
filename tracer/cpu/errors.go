package cpu

import "errors"

var (
	// ErrNoSceneData is returned when a block render is requested before
	// any scene data has been uploaded to the tracer.
	ErrNoSceneData = errors.New("cpu tracer: no scene data uploaded")
)

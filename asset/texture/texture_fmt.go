package texture

type Format uint32

const (
	Luminance8 Format = iota
	Rgba8
)

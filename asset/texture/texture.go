package texture

import (
	"fmt"
	"image"

	"github.com/auriga-render/auriga/types"
)

// A texture image and its metadata. Texel data is stored row-major with the
// origin at the top-left corner.
type Texture struct {
	Format Format

	Width  uint32
	Height uint32

	Data []byte
}

// Create an empty RGBA texture.
func NewRgba(width, height uint32) *Texture {
	return &Texture{
		Format: Rgba8,
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*4),
	}
}

// Create a texture from an image. The image is converted to RGBA.
func NewFromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("texture: unsupported zero-area image %dx%d", bounds.Dx(), bounds.Dy())
	}

	tex := NewRgba(uint32(bounds.Dx()), uint32(bounds.Dy()))
	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			tex.Data[offset] = byte(r >> 8)
			tex.Data[offset+1] = byte(g >> 8)
			tex.Data[offset+2] = byte(b >> 8)
			tex.Data[offset+3] = byte(a >> 8)
			offset += 4
		}
	}
	return tex, nil
}

// Create a checkerboard test texture alternating between two colors every
// cellSize texels.
func NewCheckerboard(width, height, cellSize uint32, evenColor, oddColor types.Vec3) *Texture {
	tex := NewRgba(width, height)
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			color := evenColor
			if ((x/cellSize)+(y/cellSize))%2 == 1 {
				color = oddColor
			}
			tex.SetTexel(x, y, color)
		}
	}
	return tex
}

// Set the texel at (x, y).
func (t *Texture) SetTexel(x, y uint32, color types.Vec3) {
	switch t.Format {
	case Luminance8:
		t.Data[y*t.Width+x] = colorByte(color[0])
	case Rgba8:
		offset := (y*t.Width + x) * 4
		t.Data[offset] = colorByte(color[0])
		t.Data[offset+1] = colorByte(color[1])
		t.Data[offset+2] = colorByte(color[2])
		t.Data[offset+3] = 0xff
	}
}

// Sample the texture at the given UV coordinates using nearest filtering
// with repeat wrapping.
func (t *Texture) Sample(u, v float32) types.Vec3 {
	x := uint32(wrap(u) * float32(t.Width))
	y := uint32(wrap(v) * float32(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	switch t.Format {
	case Luminance8:
		l := float32(t.Data[y*t.Width+x]) / 255.0
		return types.XYZ(l, l, l)
	default:
		offset := (y*t.Width + x) * 4
		return types.XYZ(
			float32(t.Data[offset])/255.0,
			float32(t.Data[offset+1])/255.0,
			float32(t.Data[offset+2])/255.0,
		)
	}
}

// Map a coordinate into [0, 1) repeating outside that range.
func wrap(v float32) float32 {
	v = v - float32(int(v))
	if v < 0 {
		v += 1
	}
	return v
}

func colorByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return byte(v*255.0 + 0.5)
}

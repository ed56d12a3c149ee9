package stream

import (
	"encoding/binary"

	"github.com/lucasb-eyer/go-colorful"
)

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	return f
}

// Len is the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// Clone copies the frame.
func (f *Frame) Clone() *Frame {
	out := NewFrame(len(f.pixels))
	copy(out.pixels, f.pixels)
	return out
}

// InterpolateFrame merges two frames of the same size.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	for i := 0; i < len(f.pixels); i++ {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], transitionPoint).Clamped()
	}

	return out
}

// MarshalBinary converts a Frame into binary data: a little-endian pixel
// count followed by one RGB triplet per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

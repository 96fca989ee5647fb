package led

import (
	"fmt"
	"io"
)

// Color is a single RGB pixel.
type Color struct {
	R, G, B uint8
}

var (
	Black  = Color{}
	Red    = Color{R: 0xFF}
	Green  = Color{G: 0xFF}
	Blue   = Color{B: 0xFF}
	Yellow = Color{R: 0xFF, G: 0xFF}
)

// Scale returns the color dimmed to scale/256 of its intensity. A scale of 255 leaves the color untouched.
func (c Color) Scale(scale uint8) Color {
	return Color{
		R: scale8(c.R, scale),
		G: scale8(c.G, scale),
		B: scale8(c.B, scale),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func scale8(v, scale uint8) uint8 {
	return uint8((uint16(v) * (uint16(scale) + 1)) >> 8)
}

// Strip buffers pixels and a global brightness. Nothing reaches the hardware until Commit is called, which
// writes the brightness adjusted frame as raw RGB bytes to the underlying writer.
type Strip struct {
	pixels     []Color
	brightness uint8
	out        io.Writer
	buf        []byte
}

func NewStrip(numPixels int, out io.Writer) *Strip {
	return &Strip{
		pixels:     make([]Color, numPixels),
		brightness: 255,
		out:        out,
		buf:        make([]byte, numPixels*3),
	}
}

func (s *Strip) Len() int {
	return len(s.pixels)
}

// SetPixels copies the given colors into the buffer. Extra colors are ignored, missing ones are left as they were.
func (s *Strip) SetPixels(pixels []Color) {
	copy(s.pixels, pixels)
}

func (s *Strip) SetBrightness(b uint8) {
	s.brightness = b
}

func (s *Strip) Brightness() uint8 {
	return s.brightness
}

// Frame returns a copy of the buffered pixels, before brightness is applied.
func (s *Strip) Frame() []Color {
	f := make([]Color, len(s.pixels))
	copy(f, s.pixels)
	return f
}

func (s *Strip) Commit() error {
	for i, p := range s.pixels {
		p = p.Scale(s.brightness)
		s.buf[i*3] = p.R
		s.buf[i*3+1] = p.G
		s.buf[i*3+2] = p.B
	}
	if _, err := s.out.Write(s.buf); err != nil {
		return fmt.Errorf("could not write frame: %v", err)
	}
	return nil
}

// Close blanks the strip and closes the underlying writer if it can be closed.
func (s *Strip) Close() error {
	s.SetPixels(Fill(s.Len(), Black))
	if err := s.Commit(); err != nil {
		return err
	}
	if c, ok := s.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Fill returns n pixels of the same color.
func Fill(n int, c Color) []Color {
	p := make([]Color, n)
	for i := range p {
		p[i] = c
	}
	return p
}

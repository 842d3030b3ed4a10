package fb

import (
	"image"
)

// Session owns the activated display mode and its linear pixel buffer. It is
// created once by Activate and is never resized.
type Session struct {
	mode   Mode
	stride uint32
	pix    []uint32
	line   LineAlgorithm
}

// NewSession wraps buf as the pixel buffer for mode. A zero buf.Stride means
// that rows are mode.Width pixels apart.
func NewSession(mode Mode, buf Buffer) *Session {
	if buf.Stride == 0 {
		buf.Stride = mode.Width
	}

	return &Session{
		mode:   mode,
		stride: buf.Stride,
		pix:    buf.Pix,
	}
}

// Mode returns the active display mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Stride returns the number of pixel words per scan line.
func (s *Session) Stride() uint32 {
	return s.stride
}

// Pixels returns the backing pixel words.
func (s *Session) Pixels() []uint32 {
	return s.pix
}

// SetLineAlgorithm selects the rasterizer used by DrawLine.
func (s *Session) SetLineAlgorithm(a LineAlgorithm) {
	s.line = a
}

// LineAlgorithm returns the rasterizer used by DrawLine.
func (s *Session) LineAlgorithm() LineAlgorithm {
	return s.line
}

// offset returns the index of the pixel at (x, y) and whether it lies inside
// the visible area of the active mode.
func (s *Session) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= int(s.mode.Width) || y >= int(s.mode.Height) {
		return 0, false
	}

	off := x + int(s.stride)*y
	return off, off < len(s.pix)
}

// SetPixel writes the pixel word c at (x, y). Writes outside the active mode
// are dropped.
func (s *Session) SetPixel(x, y int, c uint32) {
	if off, ok := s.offset(x, y); ok {
		s.pix[off] = c
	}
}

// PixelAt returns the pixel word at (x, y) or 0 if (x, y) is outside the
// active mode.
func (s *Session) PixelAt(x, y int) uint32 {
	if off, ok := s.offset(x, y); ok {
		return s.pix[off]
	}

	return 0
}

// DrawLine writes c along the segment from (x0, y0) to (x1, y1) using the
// selected line algorithm.
func (s *Session) DrawLine(x0, y0, x1, y1 int, c uint32) {
	plot := func(x, y int) { s.SetPixel(x, y, c) }

	switch s.line {
	case LineDDA:
		ddaLine(x0, y0, x1, y1, plot)
	default:
		sampledLine(x0, y0, x1, y1, plot)
	}
}

// Image copies the visible area into an RGBA image.
func (s *Session) Image() *image.RGBA {
	w, h := int(s.mode.Width), int(s.mode.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, s.mode.Format.Decode(s.PixelAt(x, y)))
		}
	}

	return img
}

package fb

import (
	"unsafe"
)

// Buffer is a linear framebuffer with one 32-bit word per pixel.
type Buffer struct {
	// Pix holds Stride * height pixel words.
	Pix []uint32

	// Stride is the number of pixel words per scan line.
	Stride uint32
}

// NewBuffer allocates a zeroed buffer for a width x height mode.
func NewBuffer(width, height uint32) Buffer {
	return Buffer{
		Pix:    make([]uint32, width*height),
		Stride: width,
	}
}

// NewRawBuffer overlays a Buffer on the linear framebuffer at the physical
// address base. It is only valid while running without memory protection, as
// on firmware targets where boot services hand out an identity mapped
// framebuffer.
func NewRawBuffer(base uintptr, stride, height uint32) Buffer {
	return Buffer{
		Pix:    unsafe.Slice((*uint32)(unsafe.Pointer(base)), int(stride)*int(height)),
		Stride: stride,
	}
}

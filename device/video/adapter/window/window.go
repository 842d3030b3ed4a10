// Package window provides a display adapter that presents its framebuffer in
// a desktop window. Builds tagged headless leave the driver out of the probe
// list.
package window

import (
	"io"
	"regprobe/device/video/adapter"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"
)

const windowTitle = "regprobe"

// WindowFb is a display adapter backed by an in-memory framebuffer that is
// shown in a window when presented.
type WindowFb struct {
	adapter.ModeList
}

// NewWindowFb creates a window adapter offering the standard modes in both
// bgr and rgb layouts.
func NewWindowFb() *WindowFb {
	return &WindowFb{
		ModeList: adapter.ModeList{
			Modes: adapter.StandardModes(fb.PixelBGRReserved8, fb.PixelRGBReserved8),
		},
	}
}

// DriverName returns the name of this driver.
func (w *WindowFb) DriverName() string {
	return "window_fb"
}

// DriverVersion returns the version of this driver.
func (w *WindowFb) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver.
func (w *WindowFb) DriverInit(out io.Writer) *kernel.Error {
	kfmt.Fprintf(out, "%d modes available\n", w.MaxMode())
	return nil
}

// rgbaPixels returns the visible area of s as non-premultiplied RGBA bytes,
// row by row. All pixels are opaque.
func rgbaPixels(s *fb.Session) []byte {
	return s.Image().Pix
}

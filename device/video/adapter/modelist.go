// Package adapter contains the display adapters available to hosted builds
// of the probe. Each adapter exposes a fixed mode list backed by an
// in-memory framebuffer; they differ in how the framebuffer is presented.
package adapter

import (
	"regprobe/device/video/fb"
	"regprobe/kernel"
)

var errInvalidMode = &kernel.Error{Module: "adapter", Message: "mode number out of range", Status: kernel.InvalidParameter}

// standardResolutions lists the resolutions offered by StandardModes.
var standardResolutions = [][2]uint32{
	{640, 480},
	{800, 600},
	{1024, 768},
	{1280, 1024},
}

// StandardModes returns every standard resolution in each of the supplied
// pixel formats, grouped by format.
func StandardModes(formats ...fb.PixelFormat) []fb.ModeInfo {
	modes := make([]fb.ModeInfo, 0, len(formats)*len(standardResolutions))
	for _, format := range formats {
		for _, res := range standardResolutions {
			modes = append(modes, fb.ModeInfo{
				Mode:              fb.Mode{Width: res[0], Height: res[1], Format: format},
				PixelsPerScanLine: res[0],
				InfoSize:          36,
			})
		}
	}

	return modes
}

// ModeList implements fb.Adapter over a fixed list of modes. Switching mode
// allocates a zeroed framebuffer for it.
type ModeList struct {
	Modes []fb.ModeInfo

	active int
	buf    fb.Buffer
}

// MaxMode implements fb.Adapter.
func (l *ModeList) MaxMode() uint32 {
	return uint32(len(l.Modes))
}

// QueryMode implements fb.Adapter.
func (l *ModeList) QueryMode(n uint32) (fb.ModeInfo, *kernel.Error) {
	if n >= l.MaxMode() {
		return fb.ModeInfo{}, errInvalidMode
	}

	return l.Modes[n], nil
}

// SetMode implements fb.Adapter.
func (l *ModeList) SetMode(n uint32) *kernel.Error {
	info, err := l.QueryMode(n)
	if err != nil {
		return err
	}

	l.active = int(n) + 1
	l.buf = fb.Buffer{
		Pix:    make([]uint32, info.PixelsPerScanLine*info.Height),
		Stride: info.PixelsPerScanLine,
	}

	return nil
}

// Framebuffer implements fb.Adapter.
func (l *ModeList) Framebuffer() fb.Buffer {
	return l.buf
}

// Active returns the active mode, if one has been set.
func (l *ModeList) Active() (fb.ModeInfo, bool) {
	if l.active == 0 {
		return fb.ModeInfo{}, false
	}

	return l.Modes[l.active-1], true
}

// Package memfb provides a display adapter whose framebuffer lives in process
// memory. Nothing is shown while the probe runs; the framebuffer contents can
// be written to an image file instead.
package memfb

import (
	"io"
	"regprobe/device"
	"regprobe/device/video/adapter"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"
)

// MemFb is an in-memory display adapter.
type MemFb struct {
	adapter.ModeList
}

// NewMemFb creates an adapter offering the standard modes in both bgr and rgb
// layouts.
func NewMemFb() *MemFb {
	return &MemFb{
		ModeList: adapter.ModeList{
			Modes: adapter.StandardModes(fb.PixelBGRReserved8, fb.PixelRGBReserved8),
		},
	}
}

// DriverName returns the name of this driver.
func (m *MemFb) DriverName() string {
	return "mem_fb"
}

// DriverVersion returns the version of this driver.
func (m *MemFb) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver.
func (m *MemFb) DriverInit(w io.Writer) *kernel.Error {
	kfmt.Fprintf(w, "%d modes available\n", m.MaxMode())
	return nil
}

func probeForMemFb() device.Driver {
	return NewMemFb()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Name:  "mem",
		Order: device.DetectOrderEarly,
		Probe: probeForMemFb,
	})
}

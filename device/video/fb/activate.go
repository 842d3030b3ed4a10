package fb

import (
	"io"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"
)

// Adapter is implemented by display adapters that expose a list of modes
// and a linear framebuffer for the active one.
type Adapter interface {
	// MaxMode returns the number of modes supported by the adapter. Valid
	// mode numbers are in [0, MaxMode).
	MaxMode() uint32

	// QueryMode returns information about mode n.
	QueryMode(n uint32) (ModeInfo, *kernel.Error)

	// SetMode switches the adapter to mode n.
	SetMode(n uint32) *kernel.Error

	// Framebuffer returns the pixel buffer of the active mode.
	Framebuffer() Buffer
}

var (
	errNoAdapter      = &kernel.Error{Module: "fb", Message: "no display adapter handle found", Status: kernel.NotFound}
	errNoMatchingMode = &kernel.Error{Module: "fb", Message: "no display mode matches the requested configuration", Status: kernel.Unsupported}
)

// Activate scans the modes of each adapter in order and switches the first
// adapter that supports want to that mode. It fails if handles is empty, if
// any mode query fails or if no adapter supports want. Progress is logged to
// w.
func Activate(w io.Writer, handles []Adapter, want Mode) (*Session, *kernel.Error) {
	if len(handles) == 0 {
		return nil, errNoAdapter
	}

	for handleIndex, adapter := range handles {
		maxMode := adapter.MaxMode()
		for n := uint32(0); n < maxMode; n++ {
			info, err := adapter.QueryMode(n)
			if err != nil {
				kfmt.Fprintf(w, "adapter %d: query mode %d failed: %s\n", handleIndex, n, err.Message)
				return nil, err
			}

			if info.Mode != want {
				continue
			}

			kfmt.Fprintf(w, "adapter %d: selecting mode %d (%s)\n", handleIndex, n, info.Mode)
			if err = adapter.SetMode(n); err != nil {
				return nil, err
			}

			buf := adapter.Framebuffer()
			if buf.Stride == 0 {
				buf.Stride = info.PixelsPerScanLine
			}

			return NewSession(info.Mode, buf), nil
		}

		kfmt.Fprintf(w, "adapter %d: no %s mode among %d modes\n", handleIndex, want, maxMode)
	}

	return nil, errNoMatchingMode
}

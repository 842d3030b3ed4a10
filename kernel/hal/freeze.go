package hal

import (
	"os"
	"os/signal"
	"regprobe/device"
	"regprobe/device/video/adapter/memfb"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"syscall"
)

// Presenter is implemented by display drivers that can show the framebuffer
// to the user. Present blocks until the user dismisses it.
type Presenter interface {
	Present(*fb.Session) error
}

var (
	errSnapshot = &kernel.Error{Module: "hal", Message: "unable to write framebuffer snapshot", Status: kernel.DeviceError}
	errPresent  = &kernel.Error{Module: "hal", Message: "unable to present framebuffer", Status: kernel.DeviceError}

	writeSnapshotFn = memfb.WriteSnapshot

	waitForSignalFn = func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		signal.Stop(sigCh)
	}
)

// Freeze keeps the reported values on display. The snapshot, if configured,
// is written first. A driver that can present the framebuffer then shows it
// until dismissed; otherwise Freeze idles until the process is signalled.
// With freeze off, Freeze returns right after the snapshot. A nil session
// means that the graphics channel is not in use.
func Freeze(cfg Config, drv device.Driver, s *fb.Session) *kernel.Error {
	if s != nil && cfg.Snapshot != "" {
		if err := writeSnapshotFn(cfg.Snapshot, s); err != nil {
			return errSnapshot
		}
	}

	if !cfg.Freeze {
		return nil
	}

	if presenter, ok := drv.(Presenter); ok && s != nil {
		if err := presenter.Present(s); err != nil {
			return errPresent
		}
		return nil
	}

	waitForSignalFn()
	return nil
}

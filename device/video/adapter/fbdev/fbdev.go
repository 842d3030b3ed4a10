// Package fbdev provides a display adapter for the Linux framebuffer device.
// The device reports a single mode, the one the console is running in, and
// the probe draws straight into the mapped video memory.
package fbdev

import (
	"bytes"
	"io"
	"regprobe/device"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Requests from linux/fb.h.
const (
	ioctlGetVarScreenInfo = 0x4600
	ioctlGetFixScreenInfo = 0x4602
)

// devicePath is the framebuffer device opened by the probe.
var devicePath = "/dev/fb0"

var (
	errInvalidMode = &kernel.Error{Module: "fbdev", Message: "mode number out of range", Status: kernel.InvalidParameter}
	errMapFailed   = &kernel.Error{Module: "fbdev", Message: "unable to map video memory", Status: kernel.DeviceError}
	errShortMemory = &kernel.Error{Module: "fbdev", Message: "video memory smaller than the visible mode", Status: kernel.DeviceError}
)

var (
	openFn  = unix.Open
	closeFn = unix.Close
	mmapFn  = unix.Mmap
	ioctlFn = func(fd int, req uintptr, arg unsafe.Pointer) error {
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg)); errno != 0 {
			return errno
		}
		return nil
	}
)

type bitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo.
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp bitfield
	_                        [16]uint32
	_                        [4]uint32
}

// fixScreenInfo mirrors struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID                            [16]byte
	SmemStart                     uintptr
	SmemLen                       uint32
	Type, TypeAux, Visual         uint32
	XPanStep, YPanStep, YWrapStep uint16
	LineLength                    uint32
	MmioStart                     uintptr
	MmioLen                       uint32
	Accel                         uint32
	Capabilities                  uint16
	_                             [2]uint16
}

// FbDev is a display adapter backed by a Linux framebuffer device.
type FbDev struct {
	fd      int
	id      string
	info    fb.ModeInfo
	smemLen uint32

	mapping []byte
	buf     fb.Buffer
}

// Open queries the framebuffer device at path.
func Open(path string) (*FbDev, error) {
	fd, err := openFn(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	var (
		vinfo varScreenInfo
		finfo fixScreenInfo
	)

	if err = ioctlFn(fd, ioctlGetVarScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		closeFn(fd)
		return nil, errors.Wrap(err, "get variable screen info")
	}

	if err = ioctlFn(fd, ioctlGetFixScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		closeFn(fd)
		return nil, errors.Wrap(err, "get fixed screen info")
	}

	return &FbDev{
		fd: fd,
		id: string(bytes.TrimRight(finfo.ID[:], "\x00")),
		info: fb.ModeInfo{
			Mode: fb.Mode{
				Width:  vinfo.XRes,
				Height: vinfo.YRes,
				Format: pixelFormat(&vinfo),
			},
			PixelsPerScanLine: finfo.LineLength / 4,
			InfoSize:          uint32(unsafe.Sizeof(vinfo)),
		},
		smemLen: finfo.SmemLen,
	}, nil
}

// pixelFormat maps the channel layout of a 32-bit mode to a pixel format.
// Other depths have no directly writable layout.
func pixelFormat(vinfo *varScreenInfo) fb.PixelFormat {
	if vinfo.BitsPerPixel != 32 {
		return fb.PixelBltOnly
	}

	switch {
	case vinfo.Red.Offset == 0 && vinfo.Green.Offset == 8 && vinfo.Blue.Offset == 16:
		return fb.PixelRGBReserved8
	case vinfo.Red.Offset == 16 && vinfo.Green.Offset == 8 && vinfo.Blue.Offset == 0:
		return fb.PixelBGRReserved8
	default:
		return fb.PixelBitMask
	}
}

// MaxMode implements fb.Adapter. The device only exposes its current mode.
func (d *FbDev) MaxMode() uint32 {
	return 1
}

// QueryMode implements fb.Adapter.
func (d *FbDev) QueryMode(n uint32) (fb.ModeInfo, *kernel.Error) {
	if n != 0 {
		return fb.ModeInfo{}, errInvalidMode
	}

	return d.info, nil
}

// SetMode implements fb.Adapter by mapping the video memory.
func (d *FbDev) SetMode(n uint32) *kernel.Error {
	if n != 0 {
		return errInvalidMode
	}

	if d.mapping != nil {
		return nil
	}

	if uint64(d.info.PixelsPerScanLine)*uint64(d.info.Height)*4 > uint64(d.smemLen) {
		return errShortMemory
	}

	mapping, err := mmapFn(d.fd, 0, int(d.smemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil || len(mapping) == 0 {
		return errMapFailed
	}

	d.mapping = mapping
	d.buf = fb.NewRawBuffer(uintptr(unsafe.Pointer(&mapping[0])), d.info.PixelsPerScanLine, d.info.Height)
	return nil
}

// Framebuffer implements fb.Adapter.
func (d *FbDev) Framebuffer() fb.Buffer {
	return d.buf
}

// DriverName returns the name of this driver.
func (d *FbDev) DriverName() string {
	return "fbdev"
}

// DriverVersion returns the version of this driver.
func (d *FbDev) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver.
func (d *FbDev) DriverInit(w io.Writer) *kernel.Error {
	kfmt.Fprintf(w, "%s: %s, %d KiB video memory\n", d.id, d.info.Mode, d.smemLen/1024)
	return nil
}

func probeForFbDev() device.Driver {
	d, err := Open(devicePath)
	if err != nil {
		return nil
	}

	return d
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Name:  "fbdev",
		Order: device.DetectOrderHost,
		Probe: probeForFbDev,
	})
}

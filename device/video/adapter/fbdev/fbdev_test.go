package fbdev

import (
	"bytes"
	"encoding/binary"
	"io"
	"regprobe/device"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type mockDevice struct {
	vinfo varScreenInfo
	finfo fixScreenInfo
	mem   []byte

	ioctlErr map[uintptr]error
	closed   bool
	mapped   int
}

// newMockDevice returns a 32-bit framebuffer device of the given size whose
// scan lines are padded to stride pixels.
func newMockDevice(width, height, stride uint32, redOffset, blueOffset uint32) *mockDevice {
	dev := &mockDevice{mem: make([]byte, stride*height*4)}
	dev.vinfo.XRes, dev.vinfo.YRes = width, height
	dev.vinfo.BitsPerPixel = 32
	dev.vinfo.Red.Offset = redOffset
	dev.vinfo.Green.Offset = 8
	dev.vinfo.Blue.Offset = blueOffset
	copy(dev.finfo.ID[:], "test fb")
	dev.finfo.SmemLen = uint32(len(dev.mem))
	dev.finfo.LineLength = stride * 4
	return dev
}

func (dev *mockDevice) install(t *testing.T) func() {
	origIoctl := ioctlFn

	openFn = func(path string, mode int, _ uint32) (int, error) {
		if path != "/dev/fb0" || mode&unix.O_RDWR != unix.O_RDWR {
			t.Fatalf("unexpected open(%q, %x)", path, mode)
		}
		return 7, nil
	}
	closeFn = func(fd int) error {
		dev.closed = fd == 7
		return nil
	}
	ioctlFn = func(fd int, req uintptr, arg unsafe.Pointer) error {
		if err := dev.ioctlErr[req]; err != nil {
			return err
		}

		switch req {
		case ioctlGetVarScreenInfo:
			*(*varScreenInfo)(arg) = dev.vinfo
		case ioctlGetFixScreenInfo:
			*(*fixScreenInfo)(arg) = dev.finfo
		default:
			t.Fatalf("unexpected ioctl request 0x%x", req)
		}
		return nil
	}
	mmapFn = func(fd int, offset int64, length, prot, flags int) ([]byte, error) {
		if fd != 7 || offset != 0 || length != len(dev.mem) || prot&unix.PROT_WRITE == 0 {
			t.Fatalf("unexpected mmap(%d, %d, %d, %d)", fd, offset, length, prot)
		}
		dev.mapped++
		return dev.mem, nil
	}

	return func() {
		openFn = unix.Open
		closeFn = unix.Close
		mmapFn = unix.Mmap
		ioctlFn = origIoctl
	}
}

func TestScreenInfoLayout(t *testing.T) {
	specs := []struct {
		name   string
		got    uintptr
		expLen uintptr
	}{
		{"fb_var_screeninfo", unsafe.Sizeof(varScreenInfo{}), 160},
		{"fb_fix_screeninfo line_length", unsafe.Offsetof(fixScreenInfo{}.LineLength), 16 + unsafe.Sizeof(uintptr(0)) + 16 + 8},
	}

	for specIndex, spec := range specs {
		if spec.got != spec.expLen {
			t.Errorf("[spec %d] expected %s at %d; got %d", specIndex, spec.name, spec.expLen, spec.got)
		}
	}
}

func TestFbDevDriver(t *testing.T) {
	drivers := device.DriverList().Named("fbdev")
	if len(drivers) != 1 {
		t.Fatalf("expected the fbdev driver to be registered once; got %d", len(drivers))
	}

	if drivers[0].Order != device.DetectOrderHost {
		t.Fatalf("expected detect order %d; got %d", device.DetectOrderHost, drivers[0].Order)
	}

	defer func() { openFn = unix.Open }()

	openFn = func(string, int, uint32) (int, error) { return -1, unix.ENOENT }
	if drv := drivers[0].Probe(); drv != nil {
		t.Fatalf("expected probe to return nil without a framebuffer device; got %v", drv)
	}

	dev := newMockDevice(640, 480, 640, 16, 0)
	defer dev.install(t)()

	drv, ok := drivers[0].Probe().(*FbDev)
	if !ok {
		t.Fatal("expected probe to return a *FbDev")
	}

	var buf bytes.Buffer
	if err := drv.DriverInit(&buf); err != nil {
		t.Fatal(err)
	}

	if exp := "test fb: 640x480 bgr, 1200 KiB video memory\n"; buf.String() != exp {
		t.Fatalf("expected init output %q; got %q", exp, buf.String())
	}
}

func TestOpenErrors(t *testing.T) {
	errIoctl := errors.New("inappropriate ioctl for device")

	for specIndex, req := range []uintptr{ioctlGetVarScreenInfo, ioctlGetFixScreenInfo} {
		dev := newMockDevice(640, 480, 640, 16, 0)
		dev.ioctlErr = map[uintptr]error{req: errIoctl}
		restore := dev.install(t)

		if _, err := Open("/dev/fb0"); errors.Cause(err) != errIoctl {
			t.Errorf("[spec %d] expected ioctl error; got %v", specIndex, err)
		}

		if !dev.closed {
			t.Errorf("[spec %d] expected the device to be closed after a failed query", specIndex)
		}

		restore()
	}
}

func TestPixelFormat(t *testing.T) {
	specs := []struct {
		bpp, red, green, blue uint32
		exp                   fb.PixelFormat
	}{
		{32, 16, 8, 0, fb.PixelBGRReserved8},
		{32, 0, 8, 16, fb.PixelRGBReserved8},
		{32, 24, 16, 8, fb.PixelBitMask},
		{16, 11, 5, 0, fb.PixelBltOnly},
	}

	for specIndex, spec := range specs {
		vinfo := varScreenInfo{BitsPerPixel: spec.bpp}
		vinfo.Red.Offset, vinfo.Green.Offset, vinfo.Blue.Offset = spec.red, spec.green, spec.blue

		if got := pixelFormat(&vinfo); got != spec.exp {
			t.Errorf("[spec %d] expected format %s; got %s", specIndex, spec.exp, got)
		}
	}
}

func TestFbDevActivate(t *testing.T) {
	dev := newMockDevice(800, 600, 832, 0, 16)
	defer dev.install(t)()

	drv, err := Open("/dev/fb0")
	if err != nil {
		t.Fatal(err)
	}

	if _, kerr := drv.QueryMode(1); kerr != errInvalidMode {
		t.Fatalf("expected errInvalidMode; got %v", kerr)
	}

	want := fb.Mode{Width: 800, Height: 600, Format: fb.PixelRGBReserved8}
	s, kerr := fb.Activate(io.Discard, []fb.Adapter{drv}, want)
	if kerr != nil {
		t.Fatal(kerr)
	}

	if s.Stride() != 832 {
		t.Fatalf("expected the padded stride 832; got %d", s.Stride())
	}

	// Pixels land directly in the mapped video memory.
	s.SetPixel(3, 2, 0x00ff00ff)
	if got := binary.LittleEndian.Uint32(dev.mem[(2*832+3)*4:]); got != 0x00ff00ff {
		t.Fatalf("expected pixel word 0x00ff00ff in video memory; got 0x%x", got)
	}

	if kerr = drv.SetMode(0); kerr != nil || dev.mapped != 1 {
		t.Fatalf("expected a repeated SetMode to keep the mapping; got err=%v mappings=%d", kerr, dev.mapped)
	}
}

func TestSetModeErrors(t *testing.T) {
	specs := []struct {
		smemLen uint32
		mmapErr error
		exp     *kernel.Error
	}{
		{640 * 480 * 2, nil, errShortMemory},
		{640 * 480 * 4, unix.EINVAL, errMapFailed},
	}

	for specIndex, spec := range specs {
		dev := newMockDevice(640, 480, 640, 16, 0)
		dev.finfo.SmemLen = spec.smemLen
		restore := dev.install(t)
		if spec.mmapErr != nil {
			mmapFn = func(int, int64, int, int, int) ([]byte, error) { return nil, spec.mmapErr }
		}

		drv, err := Open("/dev/fb0")
		if err != nil {
			t.Fatal(err)
		}

		if got := drv.SetMode(0); got != spec.exp {
			t.Errorf("[spec %d] expected error %v; got %v", specIndex, spec.exp, got)
		}

		restore()
	}
}

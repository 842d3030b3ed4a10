//go:build !headless

package window

import (
	"regprobe/device"
	"regprobe/device/video/fb"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
)

// frame is the ebiten game that shows a static framebuffer.
type frame struct {
	width, height int
	pix           []byte
	img           *ebiten.Image
}

func (f *frame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	return nil
}

func (f *frame) Draw(screen *ebiten.Image) {
	if f.img == nil {
		f.img = ebiten.NewImage(f.width, f.height)
		f.img.WritePixels(f.pix)
	}

	screen.DrawImage(f.img, nil)
}

func (f *frame) Layout(_, _ int) (int, int) {
	return f.width, f.height
}

// Present opens a window showing s and blocks until it is closed or the user
// presses Escape or q.
func (w *WindowFb) Present(s *fb.Session) error {
	mode := s.Mode()
	f := &frame{
		width:  int(mode.Width),
		height: int(mode.Height),
		pix:    rgbaPixels(s),
	}

	ebiten.SetWindowSize(f.width, f.height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(f); err != nil {
		return errors.Wrap(err, "present window")
	}

	return nil
}

func probeForWindowFb() device.Driver {
	return NewWindowFb()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Name:  "window",
		Order: device.DetectOrderHost,
		Probe: probeForWindowFb,
	})
}

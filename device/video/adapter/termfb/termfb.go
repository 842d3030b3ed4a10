// Package termfb provides a display adapter that presents its framebuffer on
// the controlling terminal. Each terminal cell shows two vertically stacked
// pixel blocks using the upper half block rune, with the foreground color for
// the upper block and the background color for the lower one.
package termfb

import (
	"io"
	"regprobe/device"
	"regprobe/device/video/adapter"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const upperHalfBlock = '▀'

// screen is the subset of tcell.Screen used by the presenter.
type screen interface {
	Init() error
	Fini()
	Clear()
	Show()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	PollEvent() tcell.Event
}

var newScreenFn = func() (screen, error) {
	return tcell.NewScreen()
}

// TermFb is a display adapter backed by an in-memory framebuffer that is
// drawn on the terminal when presented.
type TermFb struct {
	adapter.ModeList
}

// NewTermFb creates a terminal adapter offering the standard modes in both
// bgr and rgb layouts.
func NewTermFb() *TermFb {
	return &TermFb{
		ModeList: adapter.ModeList{
			Modes: adapter.StandardModes(fb.PixelBGRReserved8, fb.PixelRGBReserved8),
		},
	}
}

// DriverName returns the name of this driver.
func (t *TermFb) DriverName() string {
	return "term_fb"
}

// DriverVersion returns the version of this driver.
func (t *TermFb) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit initializes this driver. The terminal is only taken over once the
// framebuffer is presented so that setup output stays visible.
func (t *TermFb) DriverInit(w io.Writer) *kernel.Error {
	kfmt.Fprintf(w, "%d modes available\n", t.MaxMode())
	return nil
}

// Present draws s on the terminal and keeps it up to date across resizes
// until the user presses Escape, Enter, q or Ctrl-C.
func (t *TermFb) Present(s *fb.Session) error {
	scr, err := newScreenFn()
	if err != nil {
		return errors.Wrap(err, "open terminal screen")
	}

	if err = scr.Init(); err != nil {
		return errors.Wrap(err, "init terminal screen")
	}
	defer scr.Fini()

	for {
		scr.Clear()
		render(scr, s)
		scr.Show()

		for {
			ev := scr.PollEvent()
			if ev == nil || isQuit(ev) {
				return nil
			}

			if _, resized := ev.(*tcell.EventResize); resized {
				break
			}
		}
	}
}

func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}

	return false
}

// render scales the visible area of s to the screen. Each half cell covers a
// block of pixels and takes the color of the brightest pixel in it, so that
// one pixel wide strokes survive the downscale.
func render(scr screen, s *fb.Session) {
	cols, rows := scr.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	mode := s.Mode()
	width, height := int(mode.Width), int(mode.Height)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x0, x1 := col*width/cols, (col+1)*width/cols
			top := blockColor(s, x0, x1, (2*row)*height/(2*rows), (2*row+1)*height/(2*rows))
			bottom := blockColor(s, x0, x1, (2*row+1)*height/(2*rows), (2*row+2)*height/(2*rows))

			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			scr.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
}

// blockColor returns the brightest color in the pixel block [x0, x1) x
// [y0, y1). Empty blocks sample the pixel at (x0, y0).
func blockColor(s *fb.Session, x0, x1, y0, y1 int) tcell.Color {
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	format := s.Mode().Format
	best, bestLuma := format.Decode(s.PixelAt(x0, y0)), -1
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := format.Decode(s.PixelAt(x, y))
			if luma := int(c.R) + int(c.G) + int(c.B); luma > bestLuma {
				best, bestLuma = c, luma
			}
		}
	}

	return tcell.NewRGBColor(int32(best.R), int32(best.G), int32(best.B))
}

func probeForTermFb() device.Driver {
	return NewTermFb()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Name:  "term",
		Order: device.DetectOrderHost,
		Probe: probeForTermFb,
	})
}

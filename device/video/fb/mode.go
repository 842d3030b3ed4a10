package fb

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// PixelFormat describes the layout of a 32-bit pixel in the framebuffer.
type PixelFormat uint32

// The pixel formats that a display adapter may report. Only the two 8-bit per
// color formats have a linear framebuffer the probe can draw into.
const (
	PixelRGBReserved8 PixelFormat = iota
	PixelBGRReserved8
	PixelBitMask
	PixelBltOnly
)

var pixelFormatNames = map[PixelFormat]string{
	PixelRGBReserved8: "rgb",
	PixelBGRReserved8: "bgr",
	PixelBitMask:      "bitmask",
	PixelBltOnly:      "blt",
}

// String returns the short name of the pixel format.
func (f PixelFormat) String() string {
	if name, ok := pixelFormatNames[f]; ok {
		return name
	}

	return "format(" + strconv.Itoa(int(f)) + ")"
}

// ParsePixelFormat maps "rgb" and "bgr" to their pixel format. The remaining
// formats cannot be requested since they have no directly writable layout.
func ParsePixelFormat(s string) (PixelFormat, bool) {
	switch strings.ToLower(s) {
	case "rgb":
		return PixelRGBReserved8, true
	case "bgr":
		return PixelBGRReserved8, true
	}

	return 0, false
}

// Encode packs c into a pixel word for this format. Formats without a fixed
// layout are treated as bgr.
func (f PixelFormat) Encode(c color.RGBA) uint32 {
	if f == PixelRGBReserved8 {
		return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
	}

	return uint32(c.B) | uint32(c.G)<<8 | uint32(c.R)<<16
}

// Decode unpacks a pixel word into an opaque color.
func (f PixelFormat) Decode(px uint32) color.RGBA {
	lo, mid, hi := uint8(px), uint8(px>>8), uint8(px>>16)
	if f == PixelRGBReserved8 {
		return color.RGBA{R: lo, G: mid, B: hi, A: 0xff}
	}

	return color.RGBA{R: hi, G: mid, B: lo, A: 0xff}
}

// Mode is the (horizontal resolution, vertical resolution, pixel format)
// triple that identifies a display mode.
type Mode struct {
	Width  uint32
	Height uint32
	Format PixelFormat
}

// String returns the mode as "WxH format".
func (m Mode) String() string {
	return fmt.Sprintf("%dx%d %s", m.Width, m.Height, m.Format)
}

// ParseResolution parses a "WxH" string.
func ParseResolution(s string) (width, height uint32, ok bool) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	w, errW := strconv.ParseUint(parts[0], 10, 32)
	h, errH := strconv.ParseUint(parts[1], 10, 32)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return 0, 0, false
	}

	return uint32(w), uint32(h), true
}

// ModeInfo is the information an adapter reports for one of its modes.
type ModeInfo struct {
	Mode

	// PixelsPerScanLine is the number of pixel words between the start of
	// two consecutive rows. It is never smaller than Width.
	PixelsPerScanLine uint32

	// InfoSize is the size of the mode information record reported by the
	// adapter.
	InfoSize uint32
}

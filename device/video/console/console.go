package console

import (
	"image/color"
	"regprobe/device/video/fb"
)

// LineDrawer is implemented by targets that can rasterize a solid line.
// *fb.Session is the production implementation.
type LineDrawer interface {
	DrawLine(x0, y0, x1, y1 int, c uint32)
}

var (
	// ForegroundColor is the color used for hex digits.
	ForegroundColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// FallbackColor is the color used for the invalid digit marker.
	FallbackColor = color.RGBA{R: 0xff, B: 0xff, A: 0xff}
)

// HexConsole lays hex digits out on a fixed grid of glyph cells. The cursor
// starts at (0, 0), moves one column per glyph, and moves to the start of
// the next row when it reaches the grid width. The console never scrolls or
// clears; rows below the visible area are clipped by the target.
type HexConsole struct {
	target  LineDrawer
	columns uint32

	col, row uint32

	inks [2]uint32
}

// NewHexConsole creates a console that draws into target using a grid that
// is columns cells wide. fg and fallback are pixel words for the two inks.
// A zero columns value is treated as a single column grid.
func NewHexConsole(target LineDrawer, columns, fg, fallback uint32) *HexConsole {
	if columns == 0 {
		columns = 1
	}

	return &HexConsole{
		target:  target,
		columns: columns,
		inks:    [2]uint32{InkForeground: fg, InkFallback: fallback},
	}
}

// NewSessionConsole creates a console for a framebuffer session, encoding the
// default inks in the session pixel format. A zero columns value fits the
// grid to the mode width.
func NewSessionConsole(s *fb.Session, columns uint32) *HexConsole {
	mode := s.Mode()
	if columns == 0 {
		columns = mode.Width / CellWidth
	}

	return NewHexConsole(s, columns, mode.Format.Encode(ForegroundColor), mode.Format.Encode(FallbackColor))
}

// Columns returns the grid width in cells.
func (c *HexConsole) Columns() uint32 {
	return c.columns
}

// Cursor returns the current column and row.
func (c *HexConsole) Cursor() (col, row uint32) {
	return c.col, c.row
}

// RenderDigit draws the glyph for nibble at the cursor and advances the
// cursor by one column. Values above 0xf draw the fallback marker.
func (c *HexConsole) RenderDigit(nibble uint8) {
	var (
		glyph = GlyphFor(nibble)
		cell  = CellAt(c.col, c.row)
		ink   = c.inks[glyph.Ink]
	)

	for _, stroke := range glyph.Strokes {
		x0, y0 := cell.Resolve(stroke.From)
		x1, y1 := cell.Resolve(stroke.To)
		c.target.DrawLine(x0, y0, x1, y1, ink)
	}

	c.col++
	if c.col >= c.columns {
		c.col = 0
		c.row++
	}
}

// PrintValue draws v as 8 hex digits, most significant nibble first, and
// moves the cursor to the start of the next row.
func (c *HexConsole) PrintValue(v uint32) {
	for shift := 28; shift >= 0; shift -= 4 {
		c.RenderDigit(uint8(v>>uint(shift)) & 0xf)
	}

	c.PrintLineBreak()
}

// PrintLineBreak moves the cursor to the start of the next row.
func (c *HexConsole) PrintLineBreak() {
	c.col = 0
	c.row++
}

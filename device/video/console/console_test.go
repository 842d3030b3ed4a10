package console

import (
	"reflect"
	"regprobe/device/video/fb"
	"testing"
)

type line struct {
	x0, y0, x1, y1 int
	c              uint32
}

type recorder struct {
	lines []line
}

func (r *recorder) DrawLine(x0, y0, x1, y1 int, c uint32) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, c})
}

const (
	fgInk       = uint32(0xffffff)
	fallbackInk = uint32(0xff00ff)
)

// Reference coordinates of the cell at (0, 0).
const (
	xs, xq, xc, xt, xe = 3, 6, 10, 13, 17
	ys, yq, yc, yt, ye = 3, 11, 20, 28, 37
)

func TestCellAt(t *testing.T) {
	specs := []struct {
		col, row uint32
		exp      Cell
	}{
		{0, 0, Cell{XS: xs, YS: ys, XC: xc, YC: yc, XE: xe, YE: ye}},
		{2, 1, Cell{XS: 43, YS: 43, XC: 50, YC: 60, XE: 57, YE: 77}},
	}

	for specIndex, spec := range specs {
		if got := CellAt(spec.col, spec.row); got != spec.exp {
			t.Errorf("[spec %d] expected cell %+v; got %+v", specIndex, spec.exp, got)
		}
	}

	cell := CellAt(0, 0)
	if x, y := cell.Resolve(Point{RefQuarter, RefThreeQuarter}); x != xq || y != yt {
		t.Errorf("expected quarter/three-quarter point to resolve to (%d, %d); got (%d, %d)", xq, yt, x, y)
	}
}

func TestGlyphStrokes(t *testing.T) {
	box := [][4]int{{xs, ys, xe, ys}, {xe, ys, xe, ye}, {xs, ye, xe, ye}, {xs, ys, xs, ye}}

	specs := [16][][4]int{
		0x0: box,
		0x1: {{xc, ys, xc, ye}},
		0x2: {{xs, ys, xe, ys}, {xe, ys, xs, ye}, {xs, ye, xe, ye}},
		0x3: {{xe, ys, xe, ye}, {xs, ys, xe, ys}, {xs, yc, xe, yc}, {xs, ye, xe, ye}},
		0x4: {{xe, ye, xe, ys}, {xe, ys, xs, yc}, {xs, yc, xe, yc}},
		0x5: {{xe, ys, xs, ys}, {xs, ys, xs, yc}, {xs, yc, xe, yc}, {xe, yc, xe, ye}, {xe, ye, xs, ye}},
		0x6: {{xe, ys, xs, ys}, {xs, ys, xs, ye}, {xs, yc, xe, yc}, {xe, yc, xe, ye}, {xe, ye, xs, ye}},
		0x7: {{xs, ys, xe, ys}, {xe, ys, xs, ye}},
		0x8: append(append([][4]int{}, box...), [4]int{xs, yc, xe, yc}),
		0x9: {{xe, ys, xe, ye}, {xs, ye, xe, ye}, {xs, ys, xe, ys}, {xs, yc, xe, yc}, {xs, ys, xs, yc}},
		0xa: {{xc, ys, xs, ye}, {xc, ys, xe, ye}, {xq, yc, xt, yc}},
		0xb: {{xs, ys, xs, ye}, {xs, ys, xe, yq}, {xe, yq, xs, yc}, {xs, yc, xe, yt}, {xe, yt, xs, ye}},
		0xc: {{xs, ys, xe, ys}, {xs, ys, xs, ye}, {xs, ye, xe, ye}},
		0xd: {{xs, ys, xs, ye}, {xs, ys, xe, yc}, {xe, yc, xs, ye}},
		0xe: {{xs, ys, xs, ye}, {xs, ys, xe, ys}, {xs, yc, xe, yc}, {xs, ye, xe, ye}},
		0xf: {{xs, ys, xs, ye}, {xs, ys, xe, ys}, {xs, yc, xe, yc}},
	}

	for nibble, spec := range specs {
		rec := &recorder{}
		cons := NewHexConsole(rec, 8, fgInk, fallbackInk)
		cons.RenderDigit(uint8(nibble))

		if len(spec) < 1 || len(spec) > 5 {
			t.Fatalf("[nibble %x] glyph must have between 1 and 5 strokes", nibble)
		}

		if exp, got := len(spec), len(rec.lines); got != exp {
			t.Errorf("[nibble %x] expected %d strokes; got %d", nibble, exp, got)
			continue
		}

		for i, exp := range spec {
			expLine := line{exp[0], exp[1], exp[2], exp[3], fgInk}
			if got := rec.lines[i]; got != expLine {
				t.Errorf("[nibble %x] expected stroke %d to be %+v; got %+v", nibble, i, expLine, got)
			}
		}

		if col, row := cons.Cursor(); col != 1 || row != 0 {
			t.Errorf("[nibble %x] expected cursor at (1, 0); got (%d, %d)", nibble, col, row)
		}
	}
}

func TestRenderDigitInvalid(t *testing.T) {
	for _, v := range []uint8{0x10, 0x7f, 0xff} {
		rec := &recorder{}
		cons := NewHexConsole(rec, 8, fgInk, fallbackInk)
		cons.RenderDigit(v)

		exp := []line{{xs, ys, xe, ye, fallbackInk}}
		if !reflect.DeepEqual(rec.lines, exp) {
			t.Errorf("[value %#x] expected a single fallback diagonal %+v; got %+v", v, exp, rec.lines)
		}

		if col, row := cons.Cursor(); col != 1 || row != 0 {
			t.Errorf("[value %#x] expected cursor at (1, 0); got (%d, %d)", v, col, row)
		}
	}
}

func TestRenderDigitCellOffset(t *testing.T) {
	rec := &recorder{}
	cons := NewHexConsole(rec, 4, fgInk, fallbackInk)
	cons.col, cons.row = 2, 1
	cons.RenderDigit(0x1)

	exp := []line{{2*CellWidth + xc, CellHeight + ys, 2*CellWidth + xc, CellHeight + ye, fgInk}}
	if !reflect.DeepEqual(rec.lines, exp) {
		t.Fatalf("expected %+v; got %+v", exp, rec.lines)
	}
}

func TestCursorWrap(t *testing.T) {
	rec := &recorder{}
	cons := NewHexConsole(rec, 3, fgInk, fallbackInk)

	exp := [][2]uint32{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}, {0, 2}, {1, 2}}
	var prevRow uint32
	for i, pos := range exp {
		cons.RenderDigit(uint8(i))
		col, row := cons.Cursor()
		if col != pos[0] || row != pos[1] {
			t.Fatalf("[glyph %d] expected cursor at (%d, %d); got (%d, %d)", i, pos[0], pos[1], col, row)
		}

		if row < prevRow {
			t.Fatalf("[glyph %d] row moved backwards from %d to %d", i, prevRow, row)
		}
		prevRow = row
	}

	if got := NewHexConsole(rec, 0, 0, 0).Columns(); got != 1 {
		t.Fatalf("expected a zero column grid to be widened to 1; got %d", got)
	}
}

func TestPrintLineBreak(t *testing.T) {
	rec := &recorder{}
	cons := NewHexConsole(rec, 8, fgInk, fallbackInk)
	cons.RenderDigit(3)
	cons.PrintLineBreak()
	cons.PrintLineBreak()

	if col, row := cons.Cursor(); col != 0 || row != 2 {
		t.Fatalf("expected cursor at (0, 2); got (%d, %d)", col, row)
	}

	if got := len(rec.lines); got != 4 {
		t.Fatalf("expected line breaks to draw nothing; got %d strokes", got)
	}
}

// decodeRow matches the strokes drawn on row 0 against the glyph table and
// returns the nibbles in column order.
func decodeRow(t *testing.T, lines []line, count int) []uint8 {
	cells := make([][]line, count)
	for _, l := range lines {
		col := l.x0 / CellWidth
		if l.x1 < l.x0 {
			col = l.x1 / CellWidth
		}
		cells[col] = append(cells[col], l)
	}

	out := make([]uint8, 0, count)
	for col, cellLines := range cells {
	match:
		for nibble := uint8(0); nibble <= 0x10; nibble++ {
			rec := &recorder{}
			ref := NewHexConsole(rec, uint32(count), fgInk, fallbackInk)
			ref.col = uint32(col)
			ref.RenderDigit(nibble)
			if reflect.DeepEqual(rec.lines, cellLines) {
				out = append(out, nibble)
				break match
			}

			if nibble == 0x10 {
				t.Fatalf("cell %d does not match any glyph", col)
			}
		}
	}

	return out
}

func TestPrintValue(t *testing.T) {
	specs := []uint32{0xdeadbeef, 0x00000000, 0x12345678, 0xffffffff, 0x0a0b0c0d}

	for _, v := range specs {
		rec := &recorder{}
		cons := NewHexConsole(rec, 64, fgInk, fallbackInk)
		cons.PrintValue(v)

		nibbles := decodeRow(t, rec.lines, 8)
		if len(nibbles) != 8 {
			t.Fatalf("[value %08x] expected 8 glyphs; got %d", v, len(nibbles))
		}

		var got uint32
		for _, n := range nibbles {
			got = got<<4 | uint32(n)
		}

		if got != v {
			t.Errorf("expected glyphs to encode %08x; got %08x", v, got)
		}

		if col, row := cons.Cursor(); col != 0 || row != 1 {
			t.Errorf("[value %08x] expected cursor at (0, 1); got (%d, %d)", v, col, row)
		}
	}
}

func TestPrintValueDeadBeef(t *testing.T) {
	mode := fb.Mode{Width: 400, Height: 100, Format: fb.PixelBGRReserved8}

	session := fb.NewSession(mode, fb.NewBuffer(mode.Width, mode.Height))
	cons := NewSessionConsole(session, 0)
	if got := cons.Columns(); got != 20 {
		t.Fatalf("expected a 400 pixel wide mode to fit 20 columns; got %d", got)
	}

	cons.PrintValue(0xdeadbeef)

	// Render the expected digits one by one into a reference session.
	refSession := fb.NewSession(mode, fb.NewBuffer(mode.Width, mode.Height))
	ref := NewSessionConsole(refSession, 0)
	for _, nibble := range []uint8{0xd, 0xe, 0xa, 0xd, 0xb, 0xe, 0xe, 0xf} {
		ref.RenderDigit(nibble)
	}

	if !reflect.DeepEqual(session.Pixels(), refSession.Pixels()) {
		t.Fatal("expected PrintValue output to match the per-digit rendering of d,e,a,d,b,e,e,f")
	}

	if col, row := cons.Cursor(); col != 0 || row != 1 {
		t.Fatalf("expected cursor at (0, 1); got (%d, %d)", col, row)
	}

	white := mode.Format.Encode(ForegroundColor)
	if got := session.PixelAt(xs, ys); got != white {
		t.Fatalf("expected the top-left of the first glyph to be 0x%x; got 0x%x", white, got)
	}

	// Nothing is drawn past the eighth cell.
	for y := 0; y < int(mode.Height); y++ {
		for x := 8 * CellWidth; x < int(mode.Width); x++ {
			if session.PixelAt(x, y) != 0 {
				t.Fatalf("expected pixel (%d, %d) past the last glyph to be clear", x, y)
			}
		}
	}
}

func TestSessionConsoleInks(t *testing.T) {
	mode := fb.Mode{Width: 40, Height: 40, Format: fb.PixelRGBReserved8}
	session := fb.NewSession(mode, fb.NewBuffer(mode.Width, mode.Height))
	cons := NewSessionConsole(session, 0)
	cons.RenderDigit(0x20)

	// The fallback diagonal passes through the cell start point.
	if got, exp := session.PixelAt(xs, ys), uint32(0xff00ff); got != exp {
		t.Fatalf("expected fallback ink 0x%06x in rgb format; got 0x%06x", exp, got)
	}
}

func TestBoxCorners(t *testing.T) {
	mode := fb.Mode{Width: 40, Height: 40, Format: fb.PixelBGRReserved8}

	for _, nibble := range []uint8{0x0, 0x8} {
		session := fb.NewSession(mode, fb.NewBuffer(mode.Width, mode.Height))
		NewSessionConsole(session, 0).RenderDigit(nibble)

		// Every edge starts on a corner and the sampled line never reaches
		// its end point, so only the bottom-right corner stays clear.
		specs := []struct {
			x, y   int
			expSet bool
		}{
			{xs, ys, true},
			{xe, ys, true},
			{xs, ye, true},
			{xe, ye, false},
		}

		for specIndex, spec := range specs {
			if got := session.PixelAt(spec.x, spec.y) != 0; got != spec.expSet {
				t.Errorf("[nibble %x, spec %d] expected pixel (%d, %d) set=%t; got %t", nibble, specIndex, spec.x, spec.y, spec.expSet, got)
			}
		}
	}
}

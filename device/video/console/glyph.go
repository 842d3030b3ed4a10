package console

// Glyph cell geometry in pixels. Strokes are drawn inside the cell inset by
// CellMargin on every side.
const (
	CellWidth  = 20
	CellHeight = 40
	CellMargin = 3
)

// Ref selects one of the five reference coordinates along a cell axis.
type Ref uint8

// The reference coordinates along each axis of a cell, from the top-left
// inset edge to the bottom-right inset edge.
const (
	RefStart Ref = iota
	RefQuarter
	RefCenter
	RefThreeQuarter
	RefEnd
)

// Point is a reference point inside a glyph cell.
type Point struct {
	X, Y Ref
}

// Stroke is a segment between two reference points.
type Stroke struct {
	From, To Point
}

// Ink selects the color a glyph is drawn with.
type Ink uint8

// The supported inks.
const (
	InkForeground Ink = iota
	InkFallback
)

// Glyph is a stroke program drawn in a single ink.
type Glyph struct {
	Ink     Ink
	Strokes []Stroke
}

// Cell holds the pixel coordinates of the reference points of one grid cell.
type Cell struct {
	XS, YS int
	XC, YC int
	XE, YE int
}

// CellAt returns the geometry of the cell at (col, row).
func CellAt(col, row uint32) Cell {
	x, y := int(col)*CellWidth, int(row)*CellHeight
	c := Cell{
		XS: x + CellMargin,
		YS: y + CellMargin,
		XE: x + CellWidth - CellMargin,
		YE: y + CellHeight - CellMargin,
	}
	c.XC = (c.XS + c.XE) / 2
	c.YC = (c.YS + c.YE) / 2

	return c
}

// Resolve maps a reference point to pixel coordinates.
func (c Cell) Resolve(p Point) (int, int) {
	return resolve(p.X, c.XS, c.XC, c.XE), resolve(p.Y, c.YS, c.YC, c.YE)
}

func resolve(r Ref, start, center, end int) int {
	switch r {
	case RefQuarter:
		return (start + center) / 2
	case RefCenter:
		return center
	case RefThreeQuarter:
		return (center + end) / 2
	case RefEnd:
		return end
	default:
		return start
	}
}

// shorthand reference points
var (
	pSS = Point{RefStart, RefStart}
	pSC = Point{RefStart, RefCenter}
	pSE = Point{RefStart, RefEnd}
	pES = Point{RefEnd, RefStart}
	pEC = Point{RefEnd, RefCenter}
	pEE = Point{RefEnd, RefEnd}
	pCS = Point{RefCenter, RefStart}
	pCE = Point{RefCenter, RefEnd}
	pQC = Point{RefQuarter, RefCenter}
	pTC = Point{RefThreeQuarter, RefCenter}
	pEQ = Point{RefEnd, RefQuarter}
	pET = Point{RefEnd, RefThreeQuarter}
)

// shorthand strokes shared by several digits
var (
	top       = Stroke{pSS, pES}
	topRev    = Stroke{pES, pSS}
	right     = Stroke{pES, pEE}
	bottom    = Stroke{pSE, pEE}
	bottomRev = Stroke{pEE, pSE}
	left      = Stroke{pSS, pSE}
	middle    = Stroke{pSC, pEC}
	leftUpper = Stroke{pSS, pSC}
	rightLow  = Stroke{pEC, pEE}
	diagTRBL  = Stroke{pES, pSE}
)

// digitGlyphs holds the stroke programs for nibbles 0x0 to 0xf. The corner
// coordinates are part of the rendered output and must not change.
var digitGlyphs = [16]Glyph{
	0x0: {Strokes: []Stroke{top, right, bottom, left}},
	0x1: {Strokes: []Stroke{{pCS, pCE}}},
	0x2: {Strokes: []Stroke{top, diagTRBL, bottom}},
	0x3: {Strokes: []Stroke{right, top, middle, bottom}},
	0x4: {Strokes: []Stroke{{pEE, pES}, {pES, pSC}, middle}},
	0x5: {Strokes: []Stroke{topRev, leftUpper, middle, rightLow, bottomRev}},
	0x6: {Strokes: []Stroke{topRev, left, middle, rightLow, bottomRev}},
	0x7: {Strokes: []Stroke{top, diagTRBL}},
	0x8: {Strokes: []Stroke{top, right, bottom, left, middle}},
	0x9: {Strokes: []Stroke{right, bottom, top, middle, leftUpper}},
	0xa: {Strokes: []Stroke{{pCS, pSE}, {pCS, pEE}, {pQC, pTC}}},
	0xb: {Strokes: []Stroke{left, {pSS, pEQ}, {pEQ, pSC}, {pSC, pET}, {pET, pSE}}},
	0xc: {Strokes: []Stroke{top, left, bottom}},
	0xd: {Strokes: []Stroke{left, {pSS, pEC}, {pEC, pSE}}},
	0xe: {Strokes: []Stroke{left, top, middle, bottom}},
	0xf: {Strokes: []Stroke{left, top, middle}},
}

// invalidGlyph is drawn for values that are not a nibble.
var invalidGlyph = Glyph{Ink: InkFallback, Strokes: []Stroke{{pSS, pEE}}}

// GlyphFor returns the stroke program for v. Values above 0xf map to the
// fallback glyph.
func GlyphFor(v uint8) Glyph {
	if v > 0xf {
		return invalidGlyph
	}

	return digitGlyphs[v]
}

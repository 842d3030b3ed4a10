package fb

import "strings"

// lineSteps is the number of samples taken by the sampled line algorithm.
const lineSteps = 100

// LineAlgorithm selects how DrawLine rasterizes a segment.
type LineAlgorithm uint8

const (
	// LineSampled takes lineSteps evenly spaced samples along the segment
	// using integer interpolation. The end point itself is not sampled and
	// segments longer than lineSteps pixels on their dominant axis have
	// gaps. This is the reference rendering of the glyph set.
	LineSampled LineAlgorithm = iota

	// LineDDA steps one pixel at a time along the dominant axis and covers
	// both end points without gaps. Its output differs from LineSampled
	// so it must be selected explicitly.
	LineDDA
)

// ParseLineAlgorithm maps "sampled" and "dda" to a line algorithm.
func ParseLineAlgorithm(s string) (LineAlgorithm, bool) {
	switch strings.ToLower(s) {
	case "sampled":
		return LineSampled, true
	case "dda":
		return LineDDA, true
	}

	return 0, false
}

// String returns the name of the algorithm.
func (a LineAlgorithm) String() string {
	if a == LineDDA {
		return "dda"
	}

	return "sampled"
}

// sampledLine invokes plot for each of the lineSteps samples between
// (x0, y0) and (x1, y1). Samples may repeat on short segments.
func sampledLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	for i := 0; i < lineSteps; i++ {
		plot(x0+(x1-x0)*i/lineSteps, y0+(y1-y0)*i/lineSteps)
	}
}

// ddaLine invokes plot once for every pixel on the integer line between
// (x0, y0) and (x1, y1), end points included.
func ddaLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, sx := abs(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}

	dy, sy := -abs(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}

	for errAcc := dx + dy; ; {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

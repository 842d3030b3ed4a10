package port

import "io"

const hexDigits = "0123456789abcdef"

// Renderer reports values over a byte oriented port channel as 8 lower-case
// hex digits terminated by CR LF. Write errors are ignored since port output
// has no failure channel once the sink is open.
type Renderer struct {
	sink io.Writer
	buf  [8]byte
}

// NewRenderer returns a renderer that writes to sink.
func NewRenderer(sink io.Writer) *Renderer {
	return &Renderer{sink: sink}
}

// PrintValue writes v most significant nibble first, then a line break.
func (r *Renderer) PrintValue(v uint32) {
	for i := range r.buf {
		r.buf[i] = hexDigits[(v>>uint(28-4*i))&0xf]
	}

	r.sink.Write(r.buf[:])
	r.PrintLineBreak()
}

// PrintLineBreak writes CR LF.
func (r *Renderer) PrintLineBreak() {
	r.sink.Write([]byte{'\r', '\n'})
}

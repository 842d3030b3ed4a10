package output

// Renderer is implemented by the channels that can report register values.
type Renderer interface {
	// PrintValue reports a 32-bit value followed by a line break.
	PrintValue(uint32)

	// PrintLineBreak emits a line break without a value.
	PrintLineBreak()
}

// Mode selects the output channels used to report register values.
type Mode uint8

// The supported output modes.
const (
	ModeNone Mode = iota
	ModeGraphics
	ModePort
	ModeAll
	ModeInvalid
)

// ParseMode maps the positional mode argument to a Mode. "g" selects the
// graphics channel, "p" the port channel and "*" both. Any other value,
// including "u", is invalid.
func ParseMode(arg string) Mode {
	switch arg {
	case "g":
		return ModeGraphics
	case "p":
		return ModePort
	case "*":
		return ModeAll
	default:
		return ModeInvalid
	}
}

// Graphics returns true if the graphics channel is selected.
func (m Mode) Graphics() bool {
	return m == ModeGraphics || m == ModeAll
}

// Port returns true if the port channel is selected.
func (m Mode) Port() bool {
	return m == ModePort || m == ModeAll
}

// String returns the command line spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeGraphics:
		return "g"
	case ModePort:
		return "p"
	case ModeAll:
		return "*"
	default:
		return "invalid"
	}
}

// Multi fans each call out to every renderer in order.
type Multi []Renderer

// PrintValue implements Renderer.
func (m Multi) PrintValue(v uint32) {
	for _, r := range m {
		r.PrintValue(v)
	}
}

// PrintLineBreak implements Renderer.
func (m Multi) PrintLineBreak() {
	for _, r := range m {
		r.PrintLineBreak()
	}
}

// Report sends every value through the first renderer, then through the
// next one, and so on.
func (m Multi) Report(values []uint32) {
	for _, r := range m {
		for _, v := range values {
			r.PrintValue(v)
		}
	}
}

package kfmt

import (
	"fmt"
	"io"
)

// PrefixWriter is an io.Writer that wraps another io.Writer and injects a
// prefix at the beginning of each line.
type PrefixWriter struct {
	// A writer where all writes get sent to.
	Sink io.Writer

	// The prefix injected at the beginning of each line.
	Prefix []byte

	// midLine is set while the last write did not end with a line feed.
	midLine bool
}

// DriverPrefix formats the "[module] name(major.minor.patch): " prefix that
// tags driver initialization output.
func DriverPrefix(module, name string, major, minor, patch uint16) []byte {
	return []byte(fmt.Sprintf("[%s] %s(%d.%d.%d): ", module, name, major, minor, patch))
}

// Write sends p to the sink, emitting the prefix before every line. The
// injected prefix is not included in the returned byte count.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written, start int

	for i, b := range p {
		if b != '\n' {
			continue
		}

		n, err := w.writeLine(p[start : i+1])
		written += n
		if err != nil {
			return written, err
		}
		w.midLine = false
		start = i + 1
	}

	if start < len(p) {
		n, err := w.writeLine(p[start:])
		written += n
		w.midLine = true
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func (w *PrefixWriter) writeLine(line []byte) (int, error) {
	if !w.midLine {
		if _, err := w.Sink.Write(w.Prefix); err != nil {
			return 0, err
		}
	}

	return w.Sink.Write(line)
}

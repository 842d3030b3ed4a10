package port

import (
	"github.com/pkg/errors"
	"github.com/pkg/term"
)

// SerialBaud is the line speed used for serial sinks.
const SerialBaud = 115200

// Serial writes bytes to a serial line through a tty device.
type Serial struct {
	t *term.Term
}

// OpenSerial opens dev in raw mode at SerialBaud.
func OpenSerial(dev string) (*Serial, error) {
	t, err := term.Open(dev, term.Speed(SerialBaud), term.RawMode)
	if err != nil {
		return nil, errors.Wrapf(err, "open serial device %s", dev)
	}

	return &Serial{t: t}, nil
}

// Write sends p to the line.
func (s *Serial) Write(p []byte) (int, error) {
	n, err := s.t.Write(p)
	if err != nil {
		return n, errors.Wrap(err, "serial write")
	}

	return n, nil
}

// Close restores the line settings and closes the device.
func (s *Serial) Close() error {
	s.t.Restore()
	return s.t.Close()
}

package port

import (
	"os"

	"github.com/pkg/errors"
)

// COM1 is the I/O base of the first legacy serial port.
const COM1 = 0x3f8

const (
	// lineStatusReg is the offset of the UART line status register.
	lineStatusReg = 5

	// lsrTxEmpty is set when the transmit holding register can accept a
	// byte.
	lsrTxEmpty = 1 << 5

	// maxTxPolls bounds the wait for the transmitter so a missing UART
	// does not stall the probe.
	maxTxPolls = 1 << 12
)

// portFile is the subset of *os.File used to access I/O ports. Reads and
// writes at offset N access port N.
type portFile interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Close() error
}

var openPortFileFn = func(name string) (portFile, error) {
	return os.OpenFile(name, os.O_RDWR, 0)
}

// DevPort writes bytes to a UART data port through the /dev/port device.
type DevPort struct {
	f    portFile
	base uint16
	b    [1]byte
}

// OpenDevPort opens the port device at path for the UART at base.
func OpenDevPort(path string, base uint16) (*DevPort, error) {
	f, err := openPortFileFn(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open port device %s", path)
	}

	return &DevPort{f: f, base: base}, nil
}

// Write sends p one byte at a time, waiting for the transmitter before each
// byte.
func (d *DevPort) Write(p []byte) (int, error) {
	for i, ch := range p {
		d.waitTxEmpty()

		d.b[0] = ch
		if _, err := d.f.WriteAt(d.b[:], int64(d.base)); err != nil {
			return i, errors.Wrapf(err, "write port 0x%x", d.base)
		}
	}

	return len(p), nil
}

func (d *DevPort) waitTxEmpty() {
	var lsr [1]byte
	for poll := 0; poll < maxTxPolls; poll++ {
		if _, err := d.f.ReadAt(lsr[:], int64(d.base)+lineStatusReg); err != nil || lsr[0]&lsrTxEmpty != 0 {
			return
		}
	}
}

// Close releases the port device.
func (d *DevPort) Close() error {
	return d.f.Close()
}

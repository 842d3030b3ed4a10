package kernel

// Status is a firmware-style completion code. The high bit marks errors.
type Status uint64

const errorBit = Status(1) << 63

// The set of status codes reported by the probe.
const (
	Success          Status = 0
	LoadError               = errorBit | 1
	InvalidParameter        = errorBit | 2
	Unsupported             = errorBit | 3
	DeviceError             = errorBit | 7
	NotFound                = errorBit | 14
	Aborted                 = errorBit | 21
)

var statusNames = map[Status]string{
	Success:          "Success",
	LoadError:        "Load Error",
	InvalidParameter: "Invalid Parameter",
	Unsupported:      "Unsupported",
	DeviceError:      "Device Error",
	NotFound:         "Not Found",
	Aborted:          "Aborted",
}

// IsError returns true if s denotes a failure.
func (s Status) IsError() bool {
	return s&errorBit != 0
}

// String returns the name of the status code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	if s.IsError() {
		return "Error"
	}

	return "Warning"
}

// Code returns the status as an exit code for hosted environments. Success
// maps to 0 and each error maps to its low byte.
func (s Status) Code() int {
	return int(s & 0xff)
}

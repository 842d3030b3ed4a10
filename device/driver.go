package device

import (
	"io"
	"regprobe/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular
// piece of hardware and returns a driver for it.
type ProbeFn func() Driver

// DetectOrder specifies when each driver's probe function will be invoked
// relative to other drivers.
type DetectOrder int8

// The list of supported detection orders.
const (
	// DetectOrderEarly is used by drivers that do not depend on any
	// other driver, like the in-memory framebuffer.
	DetectOrderEarly DetectOrder = -128 + iota

	// DetectOrderHost is used by drivers that need a host service such as
	// a window system or a controlling terminal.
	DetectOrderHost DetectOrder = 0

	// DetectOrderLast is the last detection order.
	DetectOrderLast DetectOrder = 127
)

// DriverInfo describes a registered driver.
type DriverInfo struct {
	// Name is the key used to select the driver from the command line.
	Name string

	// Order specifies at which stage of the detection process this driver
	// will be probed.
	Order DetectOrder

	// Probe returns a driver instance or nil if the hardware is missing.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that implements sort.Interface.
type DriverInfoList []*DriverInfo

// Len returns the length of the driver info list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 elements in the driver info list.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less compares 2 elements of the driver info list.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

// Named returns the subset of the list whose Name equals name.
func (l DriverInfoList) Named(name string) DriverInfoList {
	var out DriverInfoList
	for _, info := range l {
		if info.Name == name {
			out = append(out, info)
		}
	}

	return out
}

var registeredDrivers DriverInfoList

// RegisterDriver adds the supplied driver info to the list of registered
// drivers. Drivers call it from an init() block.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the list of registered drivers.
func DriverList() DriverInfoList {
	return registeredDrivers
}

package register

import (
	"sync/atomic"
	"unsafe"
)

// Raw reads registers by dereferencing their physical address. It is only
// usable when physical memory is identity mapped, as on firmware targets.
type Raw struct{}

// Read32 implements Reader as a single aligned 32-bit load.
func (Raw) Read32(addr uint64) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(uintptr(addr))))
}

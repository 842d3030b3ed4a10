package register

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const pageSize = 4096

var (
	openFn   = unix.Open
	mmapFn   = unix.Mmap
	munmapFn = unix.Munmap
	closeFn  = unix.Close
)

// DevMem reads registers through read-only mappings of the /dev/mem device.
// Each page is mapped on first access and kept for the life of the reader.
type DevMem struct {
	fd    int
	pages map[uint64][]byte
}

// OpenDevMem opens the physical memory device at path.
func OpenDevMem(path string) (*DevMem, error) {
	fd, err := openFn(path, unix.O_RDONLY|unix.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	return &DevMem{fd: fd, pages: make(map[uint64][]byte)}, nil
}

// Read32 implements Reader. Unaligned addresses and pages that cannot be
// mapped read as Unreadable.
func (m *DevMem) Read32(addr uint64) uint32 {
	if addr&3 != 0 {
		return Unreadable
	}

	page := addr &^ (pageSize - 1)
	mapping, ok := m.pages[page]
	if !ok {
		var err error
		if mapping, err = mmapFn(m.fd, int64(page), pageSize, unix.PROT_READ, unix.MAP_SHARED); err != nil {
			return Unreadable
		}
		m.pages[page] = mapping
	}

	return Raw{}.Read32(uint64(uintptr(unsafe.Pointer(&mapping[addr-page]))))
}

// Close unmaps all pages and closes the device.
func (m *DevMem) Close() error {
	for page, mapping := range m.pages {
		munmapFn(mapping)
		delete(m.pages, page)
	}

	return closeFn(m.fd)
}

package hal

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"os"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"
	"strconv"
	"strings"
)

// MemoryEntryType defines the type of a memory map entry.
type MemoryEntryType uint32

const (
	// MemAvailable indicates that the memory region is available for use.
	MemAvailable MemoryEntryType = iota + 1

	// MemReserved indicates that the memory region is not available for use.
	MemReserved

	// MemAcpiReclaimable indicates a memory region that holds ACPI info that
	// can be reused by the OS.
	MemAcpiReclaimable

	// MemNvs indicates memory that must be preserved when hibernating.
	MemNvs
)

// String implements fmt.Stringer for MemoryEntryType.
func (t MemoryEntryType) String() string {
	switch t {
	case MemAvailable:
		return "available"
	case MemReserved:
		return "reserved"
	case MemAcpiReclaimable:
		return "ACPI (reclaimable)"
	case MemNvs:
		return "NVS"
	default:
		return "unknown"
	}
}

// MemoryMapEntry describes a memory region entry, namely its physical address,
// its length and its type.
type MemoryMapEntry struct {
	PhysAddress uint64
	Length      uint64
	Type        MemoryEntryType
}

// MemoryMap is a snapshot of the physical memory layout. Key identifies the
// snapshot and must be handed back to ExitBootServices.
type MemoryMap struct {
	Entries []MemoryMapEntry
	Key     uint64
}

// Lifecycle is the firmware service that the probe hands the machine over
// from. Once ExitBootServices succeeds, boot services are gone for good.
type Lifecycle interface {
	// MemoryMap returns the current memory map.
	MemoryMap() (*MemoryMap, *kernel.Error)

	// ExitBootServices relinquishes boot services. It fails if key does not
	// identify the latest memory map.
	ExitBootServices(key uint64) *kernel.Error
}

var (
	errStaleMapKey   = &kernel.Error{Module: "hal", Message: "memory map key is stale", Status: kernel.InvalidParameter}
	errServicesGone  = &kernel.Error{Module: "hal", Message: "boot services have already been exited", Status: kernel.Unsupported}
	errMemoryMapRead = &kernel.Error{Module: "hal", Message: "unable to read the memory map", Status: kernel.DeviceError}

	readFileFn = os.ReadFile
)

// iomemPath lists the physical memory layout on Linux hosts.
const iomemPath = "/proc/iomem"

// hostLifecycle stands in for firmware boot services on a hosted OS. The
// memory map comes from /proc/iomem; exiting boot services only invalidates
// further calls.
type hostLifecycle struct {
	lastKey uint64
	haveKey bool
	exited  bool
}

// MemoryMap implements Lifecycle. Hosts without /proc/iomem report an empty
// map.
func (l *hostLifecycle) MemoryMap() (*MemoryMap, *kernel.Error) {
	if l.exited {
		return nil, errServicesGone
	}

	data, err := readFileFn(iomemPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, errMemoryMapRead
	}

	h := fnv.New64a()
	h.Write(data)

	mm := &MemoryMap{
		Entries: parseIOMem(data),
		Key:     h.Sum64(),
	}
	l.lastKey, l.haveKey = mm.Key, true

	return mm, nil
}

// ExitBootServices implements Lifecycle.
func (l *hostLifecycle) ExitBootServices(key uint64) *kernel.Error {
	switch {
	case l.exited:
		return errServicesGone
	case !l.haveKey || key != l.lastKey:
		return errStaleMapKey
	}

	l.exited = true
	return nil
}

// parseIOMem extracts the top level regions from /proc/iomem formatted data.
// Lines look like "00100000-bffdffff : System RAM"; nested resources are
// indented and skipped.
func parseIOMem(data []byte) []MemoryMapEntry {
	var entries []MemoryMapEntry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' {
			continue
		}

		parts := strings.SplitN(line, " : ", 2)
		if len(parts) != 2 {
			continue
		}

		bounds := strings.SplitN(parts[0], "-", 2)
		if len(bounds) != 2 {
			continue
		}

		start, errStart := strconv.ParseUint(bounds[0], 16, 64)
		end, errEnd := strconv.ParseUint(bounds[1], 16, 64)
		if errStart != nil || errEnd != nil || end < start {
			continue
		}

		entries = append(entries, MemoryMapEntry{
			PhysAddress: start,
			Length:      end - start + 1,
			Type:        iomemType(parts[1]),
		})
	}

	return entries
}

func iomemType(name string) MemoryEntryType {
	switch name {
	case "System RAM":
		return MemAvailable
	case "ACPI Tables":
		return MemAcpiReclaimable
	case "ACPI Non-volatile Storage":
		return MemNvs
	default:
		return MemReserved
	}
}

// handoff fetches the memory map and exits boot services with its key.
func handoff(l Lifecycle) (string, *kernel.Error) {
	mm, err := l.MemoryMap()
	if err != nil {
		return "get memory map", err
	}

	var available uint64
	for _, entry := range mm.Entries {
		if entry.Type == MemAvailable {
			available += entry.Length
		}
	}
	kfmt.Printf("[hal] memory map: %d regions, %d KiB available\n", len(mm.Entries), available/1024)

	if err = l.ExitBootServices(mm.Key); err != nil {
		return "exit boot services", err
	}

	return "", nil
}

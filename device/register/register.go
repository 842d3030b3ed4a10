package register

import (
	"fmt"

	"github.com/pkg/errors"
)

// TXTPublicBase is the physical base of the TXT public configuration space.
const TXTPublicBase = 0xfed30000

// Descriptor names a 32-bit register at an absolute physical address.
type Descriptor struct {
	Name string
	Addr uint64
}

// String returns "*address [name]".
func (d Descriptor) String() string {
	return fmt.Sprintf("*0x%X [%s]", d.Addr, d.Name)
}

// Table is an ordered list of registers to report.
type Table []Descriptor

// DefaultTable lists the TXT status registers reported when no table script
// is supplied.
var DefaultTable = Table{
	{"TXT.STS", TXTPublicBase + 0x000},
	{"TXT.ESTS", TXTPublicBase + 0x008},
	{"TXT.ERRORCODE", TXTPublicBase + 0x030},
	{"TXT.BOOTSTATUS", TXTPublicBase + 0x0a0},
	{"TXT.VER.FSBIF", TXTPublicBase + 0x100},
	{"TXT.DIDVID", TXTPublicBase + 0x110},
	{"TXT.VER.QPIIF", TXTPublicBase + 0x200},
	{"TXT.SINIT.BASE", TXTPublicBase + 0x270},
	{"TXT.HEAP.BASE", TXTPublicBase + 0x300},
	{"TXT.ACM_STATUS", TXTPublicBase + 0x328},
	{"TXT.DPR", TXTPublicBase + 0x330},
	{"ACM_POLICY_STATUS", TXTPublicBase + 0x378},
	{"TXT.E2STS", TXTPublicBase + 0x8f0},
}

// Lookup returns the register called name.
func (t Table) Lookup(name string) (Descriptor, bool) {
	for _, d := range t {
		if d.Name == name {
			return d, true
		}
	}

	return Descriptor{}, false
}

// Reader performs raw 32-bit register loads. Reads have no failure channel;
// registers that cannot be reached read as all ones.
type Reader interface {
	Read32(addr uint64) uint32
}

// Unreadable is the value returned for registers that cannot be read.
const Unreadable = 0xffffffff

// Fixed is a Reader backed by a map of addresses to values.
type Fixed map[uint64]uint32

// NewFixed builds a Fixed reader from a map of register names to values.
// Names missing from t are rejected.
func NewFixed(t Table, values map[string]uint32) (Fixed, error) {
	f := make(Fixed, len(values))
	for name, v := range values {
		d, ok := t.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown register %q", name)
		}
		f[d.Addr] = v
	}

	return f, nil
}

// Read32 implements Reader.
func (f Fixed) Read32(addr uint64) uint32 {
	if v, ok := f[addr]; ok {
		return v
	}

	return Unreadable
}

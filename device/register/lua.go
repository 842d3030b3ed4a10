package register

import (
	"math"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

const (
	// tableGlobal is the global a register script must assign.
	tableGlobal = "registers"

	// maxLuaAddr is the largest address a Lua number holds exactly.
	maxLuaAddr = 1 << 53
)

// LoadLuaTable runs the script at path and returns the register table it
// defines. The script assigns a global list of {name = ..., addr = ...}
// entries, for example:
//
//	local txt = 0xfed30000
//	registers = {
//		{ name = "TXT.STS", addr = txt + 0x000 },
//		{ name = "TXT.ESTS", addr = txt + 0x008 },
//	}
func LoadLuaTable(path string) (Table, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, errors.Wrapf(err, "run register script %s", path)
	}

	return tableFromState(L)
}

// LoadLuaTableString behaves like LoadLuaTable but runs the supplied source.
func LoadLuaTableString(src string) (Table, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return nil, errors.Wrap(err, "run register script")
	}

	return tableFromState(L)
}

func tableFromState(L *lua.LState) (Table, error) {
	list, ok := L.GetGlobal(tableGlobal).(*lua.LTable)
	if !ok {
		return nil, errors.Errorf("register script does not define a %q table", tableGlobal)
	}

	table := make(Table, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, errors.Errorf("register entry %d is not a table", i)
		}

		name, ok := entry.RawGetString("name").(lua.LString)
		if !ok || name == "" {
			return nil, errors.Errorf("register entry %d has no name", i)
		}

		addr, ok := entry.RawGetString("addr").(lua.LNumber)
		if !ok || addr < 0 || addr > maxLuaAddr || float64(addr) != math.Trunc(float64(addr)) {
			return nil, errors.Errorf("register %s has no valid address", name)
		}

		table = append(table, Descriptor{Name: string(name), Addr: uint64(addr)})
	}

	if len(table) == 0 {
		return nil, errors.Errorf("register script defines an empty %q table", tableGlobal)
	}

	return table, nil
}

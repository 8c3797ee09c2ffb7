package cheats

import (
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Script wraps a Lua state that gets one chance per frame to poke at
// memory through a read/write API, for cheats too dynamic to
// express as a fixed address/value patch (frame counters, RNG
// manipulation, and the like).
type Script struct {
	state *lua.LState
	mem   Memory
}

// LoadScript parses and loads source, binding mem.Read/mem.Write as the
// "gb" global table's read(addr) and write(addr, value) functions.
func LoadScript(source string, mem Memory) (*Script, error) {
	s := &Script{state: lua.NewState(), mem: mem}

	gb := s.state.NewTable()
	s.state.SetFuncs(gb, map[string]lua.LGFunction{
		"read":  s.luaRead,
		"write": s.luaWrite,
	})
	s.state.SetGlobal("gb", gb)

	if err := s.state.DoString(source); err != nil {
		s.state.Close()
		return nil, err
	}
	return s, nil
}

// LoadScriptFile reads path and loads its contents as a Lua cheat script
// bound to mem.
func LoadScriptFile(path string, mem Memory) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadScript(string(src), mem)
}

func (s *Script) luaRead(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	L.Push(lua.LNumber(s.mem.Read(addr)))
	return 1
}

func (s *Script) luaWrite(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	value := uint8(L.CheckInt(2))
	s.mem.Write(addr, value)
	return 0
}

// OnFrame calls the script's global onFrame() function, if defined, once
// per emulated video frame.
func (s *Script) OnFrame() error {
	fn := s.state.GetGlobal("onFrame")
	if fn == lua.LNil {
		return nil
	}
	return s.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	})
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

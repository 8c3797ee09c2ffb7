// Package cheats applies Game Genie and GameShark style memory patches,
// and exposes a Lua scripting hook for patches too dynamic to express as
// a fixed address/value pair.
package cheats

import (
	"fmt"
	"os"
	"strings"
)

// Patch is a single decoded cheat: write Value to Address, optionally
// only when the byte currently there equals Compare (GameShark codes are
// unconditional; nine-digit Game Genie codes carry a compare byte,
// six-digit ones do not).
type Patch struct {
	Address     uint16
	Value       uint8
	Compare     uint8
	HasCompare  bool
	Description string
}

// Memory is the narrow surface a Patch needs to apply itself, satisfied
// by *bus.Bus.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Apply writes the patch's value if there's no compare byte, or if the
// byte currently at Address matches it.
func (p Patch) Apply(m Memory) {
	if p.HasCompare && m.Read(p.Address) != p.Compare {
		return
	}
	m.Write(p.Address, p.Value)
}

// List holds every active patch, applied once per frame by the host loop.
type List struct {
	Patches []Patch
}

// LoadFile reads a newline-delimited cheat list: one Game Genie or
// GameShark code per line, blank lines and lines starting with # ignored.
func LoadFile(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	list := &List{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patch, err := Decode(line)
		if err != nil {
			return nil, fmt.Errorf("cheats: %q: %w", line, err)
		}
		list.Patches = append(list.Patches, patch)
	}
	return list, nil
}

// Decode parses a single cheat code, trying GameShark's fixed
// 8-hex-digit form first, then Game Genie's hyphenated form.
func Decode(code string) (Patch, error) {
	code = strings.TrimSpace(code)
	if isGameSharkCode(code) {
		return decodeGameShark(code)
	}
	return decodeGameGenie(code)
}

// Apply runs every patch in the list against m, called once per frame.
func (l *List) Apply(m Memory) {
	for _, p := range l.Patches {
		p.Apply(m)
	}
}

// Package cartridge decodes a Game Boy ROM image's header and implements
// bank switching for the mapper it selects.
package cartridge

import (
	"fmt"
	"os"
	"time"

	"github.com/dmgcore/dmgemu/internal/logging"
)

// LoadError wraps a cartridge load failure: a missing file, a truncated
// image, or an unsupported mapper byte. It always propagates to the host.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cartridge: failed to load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Cartridge owns the ROM image, the decoded header, and the active
// mapper's bank-switching state.
type Cartridge struct {
	Header Header
	mapper mapper

	// savePath, if non-empty, is where external RAM is flushed on Close
	// for battery-backed cartridges — ordinary SRAM-battery behavior, not
	// a save state.
	savePath string
}

// Load parses a raw ROM image and constructs the cartridge for whichever
// mapper its header selects.
func Load(rom []byte) (*Cartridge, error) {
	return LoadWithClock(rom, time.Now)
}

// LoadWithClock is Load with an injectable wall clock, used by tests that
// need deterministic MBC3 RTC behavior.
func LoadWithClock(rom []byte, clock ClockFunc) (*Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}
	if !header.ChecksumValid {
		logging.Log.Warnf("cartridge: %q has an invalid header checksum (real hardware boots anyway)", header.Title)
	}

	c := &Cartridge{Header: header}
	switch header.Kind {
	case MBC1:
		c.mapper = newMBC1Mapper(rom, header.RAMSize)
	case MBC3:
		c.mapper = newMBC3Mapper(rom, header.RAMSize, clock)
	case MBC5:
		c.mapper = newMBC5Mapper(rom, header.RAMSize)
	default:
		c.mapper = newNoneMapper(rom, header.RAMSize)
	}
	return c, nil
}

// LoadFile reads a ROM image from disk and loads it.
func LoadFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	c, err := Load(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return c, nil
}

// Read dispatches a CPU address in 0x0000-0x7FFF or 0xA000-0xBFFF to the
// active mapper.
func (c *Cartridge) Read(addr uint16) uint8 {
	if addr < 0x8000 {
		return c.mapper.ReadROM(addr)
	}
	return c.mapper.ReadRAM(addr)
}

// Write dispatches a CPU write in 0x0000-0x7FFF (mapper control register)
// or 0xA000-0xBFFF (external RAM) to the active mapper.
func (c *Cartridge) Write(addr uint16, value uint8) {
	if addr < 0x8000 {
		c.mapper.WriteControl(addr, value)
	} else {
		c.mapper.WriteRAM(addr, value)
	}
}

// ramBytes extracts the raw external RAM array for persistence, if the
// active mapper exposes one.
func (c *Cartridge) ramBytes() []byte {
	switch m := c.mapper.(type) {
	case *mbc1Mapper:
		return m.ram
	case *mbc3Mapper:
		return m.ram
	case *mbc5Mapper:
		return m.ram
	case *noneMapper:
		return m.ram
	}
	return nil
}

// AttachSave points the cartridge at a save-RAM file: if it exists its
// contents are loaded into external RAM now, and Close will flush RAM
// back to it. Only meaningful for battery-backed cartridges.
func (c *Cartridge) AttachSave(path string) error {
	c.savePath = path
	if !c.Header.Battery {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	ram := c.ramBytes()
	copy(ram, data)
	return nil
}

// Close flushes external RAM to the attached save path, for
// battery-backed cartridges only.
func (c *Cartridge) Close() error {
	if c.savePath == "" || !c.Header.Battery {
		return nil
	}
	ram := c.ramBytes()
	if ram == nil {
		return nil
	}
	return os.WriteFile(c.savePath, ram, 0o644)
}

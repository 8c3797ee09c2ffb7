package emulator

import (
	"testing"

	"github.com/dmgcore/dmgemu/internal/cartridge"
)

// newTestGameBoy builds a GameBoy around a minimal 32 KiB ROM-only
// cartridge, with program bytes installed starting at 0x0100.
func newTestGameBoy(t *testing.T, program ...uint8) *GameBoy {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)
	cart, err := cartridge.Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	return New(cart)
}

func TestBootToEntryExecutesNOP(t *testing.T) {
	gb := newTestGameBoy(t, 0x00) // NOP
	startCycles := gb.CPU.Cycles
	cycles, err := gb.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 4 {
		t.Fatalf("NOP consumed %d cycles, want 4", cycles)
	}
	if gb.CPU.PC != 0x0101 {
		t.Fatalf("PC = 0x%04X, want 0x0101", gb.CPU.PC)
	}
	if gb.CPU.Cycles != startCycles+4 {
		t.Fatalf("Cycles = %d, want %d", gb.CPU.Cycles, startCycles+4)
	}
}

func TestJPSetsProgramCounterAndCycles(t *testing.T) {
	gb := newTestGameBoy(t, 0xC3, 0x50, 0x01) // JP 0x0150
	cycles, err := gb.Step()
	if err != nil {
		t.Fatal(err)
	}
	if gb.CPU.PC != 0x0150 {
		t.Fatalf("PC = 0x%04X, want 0x0150", gb.CPU.PC)
	}
	if cycles != 16 {
		t.Fatalf("JP consumed %d cycles, want 16", cycles)
	}
}

func TestVBlankInterruptServicedAfterOneFrame(t *testing.T) {
	// A tight idle loop at 0x0100: JR -2 (jump to self), so the machine
	// just idles while the PPU runs toward VBlank.
	gb := newTestGameBoy(t, 0x18, 0xFE)

	gb.Bus.IRQ.Enable = 0x01 // IE.VBlank
	gb.CPU.IRQ.IME = true

	var serviced bool
	for i := 0; i < 200000; i++ {
		if _, err := gb.Step(); err != nil {
			t.Fatal(err)
		}
		if gb.CPU.PC == 0x0040 {
			serviced = true
			break
		}
	}
	if !serviced {
		t.Fatal("VBlank interrupt was never serviced within one frame's worth of stepping")
	}
	if gb.CPU.IRQ.IME {
		t.Fatal("IME should be cleared once the interrupt is serviced")
	}
	if gb.Bus.IRQ.Flag&0x01 != 0 {
		t.Fatal("IF.VBlank should be cleared once serviced")
	}
}

func TestSetButtonsForwardsToJoypad(t *testing.T) {
	gb := newTestGameBoy(t, 0x00)
	gb.SetButtons(0x0E, 0x0F) // Right pressed
	gb.Bus.Joypad.Write(0x20) // select dpad row (bit 4 = 0)
	if got := gb.Bus.Joypad.Read() & 0x0F; got != 0x0E {
		t.Fatalf("joypad row = 0x%X, want 0x0E", got)
	}
}

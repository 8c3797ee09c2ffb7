package cpu

import (
	"testing"

	"github.com/dmgcore/dmgemu/internal/interrupts"
)

// fakeBus is a flat 64KiB memory used to exercise the CPU without a full
// bus/cartridge stack.
type fakeBus struct {
	mem [0x10000]uint8
}

func (b *fakeBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v uint8)   { b.mem[addr] = v }
func (b *fakeBus) load(addr uint16, bytes ...uint8) {
	copy(b.mem[addr:], bytes)
}

func newTestCPU() (*CPU, *fakeBus) {
	irq := interrupts.NewService()
	c := NewCPU(irq)
	c.PC = 0x0100
	c.SP = 0xFFFE
	return c, &fakeBus{}
}

func TestFlagNibbleAlwaysZero(t *testing.T) {
	c, _ := newTestCPU()
	c.F = 0xFF
	c.setFlags(true, true, true, true)
	if c.F&0x0F != 0 {
		t.Fatalf("F low nibble = 0x%X, want 0", c.F&0x0F)
	}
	c.setFlag(FlagZero, true)
	if c.F&0x0F != 0 {
		t.Fatalf("F low nibble after setFlag = 0x%X, want 0", c.F&0x0F)
	}
}

func TestAFRoundTripMasksLowNibble(t *testing.T) {
	c, _ := newTestCPU()
	c.SetAF(0x1234)
	if c.F&0x0F != 0 {
		t.Fatalf("SetAF left F = 0x%02X, want low nibble clear", c.F)
	}
	if c.A != 0x12 {
		t.Fatalf("A = 0x%02X, want 0x12", c.A)
	}
}

func TestLDRegisterToRegisterCopiesSource(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0x41) // LD B,C
	c.B = 0x00
	c.C = 0x7E
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if c.B != 0x7E {
		t.Fatalf("B = 0x%02X, want 0x7E", c.B)
	}
}

func TestMemoryWriteThenReadIdentity(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0x36, 0x5A) // LD (HL),0x5A
	c.SetHL(0xC000)
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if got := bus.Read(0xC000); got != 0x5A {
		t.Fatalf("(HL) = 0x%02X, want 0x5A", got)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0xC5, 0xC1) // PUSH BC, POP BC
	c.SetBC(0xBEEF)

	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	c.SetBC(0x0000)
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if c.BC() != 0xBEEF {
		t.Fatalf("BC after push/pop = 0x%04X, want 0xBEEF", c.BC())
	}
}

func TestNOPConsumesFourCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0x00)
	cycles, err := c.Step(bus)
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 4 {
		t.Fatalf("NOP cost %d cycles, want 4", cycles)
	}
}

func TestSTOPSkipsPaddingByteInFourCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0x10, 0x00) // STOP + padding byte
	cycles, err := c.Step(bus)
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 4 {
		t.Fatalf("STOP cost %d cycles, want 4", cycles)
	}
	if c.PC != 0x0102 {
		t.Fatalf("PC = 0x%04X, want 0x0102 (past the padding byte)", c.PC)
	}
}

func TestIllegalOpcodeReturnsError(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0xD3) // undefined
	_, err := c.Step(bus)
	if err == nil {
		t.Fatal("expected an IllegalOpcodeError, got nil")
	}
	illegalErr, ok := err.(*IllegalOpcodeError)
	if !ok {
		t.Fatalf("error %v is not an IllegalOpcodeError", err)
	}
	if illegalErr.Opcode != 0xD3 {
		t.Fatalf("Opcode = 0x%02X, want 0xD3", illegalErr.Opcode)
	}
}

func TestHaltWakesOnPendingInterrupt(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0x76) // HALT
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if !c.halted {
		t.Fatal("expected CPU to be halted")
	}

	c.IRQ.Enable = 1 << interrupts.VBlankFlag
	c.IRQ.Request(interrupts.VBlankFlag)

	bus.load(0x0101, 0x00) // NOP, to resume into after waking
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if c.halted {
		t.Fatal("expected CPU to wake from HALT once an interrupt is pending")
	}
}

func TestInterruptDispatchPushesPCAndClearsIME(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x1234
	c.IRQ.IME = true
	c.IRQ.Enable = 1 << interrupts.VBlankFlag
	c.IRQ.Request(interrupts.VBlankFlag)

	cycles, err := c.Step(bus)
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 20 {
		t.Fatalf("interrupt dispatch cost %d cycles, want 20", cycles)
	}
	if c.IRQ.IME {
		t.Fatal("IME should be cleared after dispatch")
	}
	if c.PC != interrupts.VBlank {
		t.Fatalf("PC = 0x%04X, want vector 0x%04X", c.PC, interrupts.VBlank)
	}
	lo := bus.Read(c.SP)
	hi := bus.Read(c.SP + 1)
	if uint16(hi)<<8|uint16(lo) != 0x1234 {
		t.Fatalf("pushed return address = 0x%04X, want 0x1234", uint16(hi)<<8|uint16(lo))
	}
}

func TestEIDelaysIMEByOneInstruction(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x0100, 0xFB, 0x00) // EI, NOP
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if c.IRQ.IME {
		t.Fatal("IME should not be set immediately after EI")
	}
	if _, err := c.Step(bus); err != nil {
		t.Fatal(err)
	}
	if !c.IRQ.IME {
		t.Fatal("IME should be set after the instruction following EI")
	}
}

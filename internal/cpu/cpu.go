// Package cpu implements the SM83 core: the full primary and CB-prefixed
// instruction sets, interrupt dispatch, and HALT semantics, dispatched
// through flat 256-entry tables.
package cpu

import (
	"fmt"

	"github.com/dmgcore/dmgemu/internal/interrupts"
)

// Bus is everything the CPU needs from its peer to fetch, execute, and
// service interrupts. The emulator's memory bus implements it; there is
// no back-pointer from the bus to the CPU.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// IllegalOpcodeError is returned by Step when PC lands on one of the 11
// undefined primary opcodes. It is never silently treated as a NOP.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// CPU holds SM83 register and control state. It consumes no components
// directly beyond the Bus and interrupt Service passed into Step/NewCPU;
// PPU/timer/APU never appear here.
type CPU struct {
	Registers
	SP, PC uint16

	IRQ *interrupts.Service

	halted     bool
	imePending bool // EI's one-instruction IME-enable delay

	Cycles uint64 // monotonic T-cycle counter, wraps at 64 bits

	// currentTick counts T-cycles consumed by the instruction in progress.
	currentTick uint8

	// Debug, when true, arms a breakpoint on "LD B,B", the conventional
	// software breakpoint used by Game Boy test ROMs.
	Debug           bool
	DebugBreakpoint bool
}

// NewCPU returns a CPU wired to the given interrupt service. Register
// state starts zeroed; call Reset to install the post-boot values.
func NewCPU(irq *interrupts.Service) *CPU {
	return &CPU{IRQ: irq}
}

// Reset installs the DMG post-boot register values, the state left behind
// when the boot ROM is skipped.
func (c *CPU) Reset() {
	c.SetAF(0x01B0)
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IRQ.IME = false
	c.halted = false
	c.imePending = false
}

// Step executes exactly one instruction (or services one interrupt, or
// idles one 4-cycle tick while halted) and returns the number of T-cycles
// consumed.
func (c *CPU) Step(bus Bus) (uint8, error) {
	c.currentTick = 0

	if c.halted {
		c.tick(bus, 4)
		if c.IRQ.HasPending() {
			c.halted = false
		} else {
			return c.currentTick, nil
		}
	}

	// EI takes effect only after the instruction following it has run: the
	// pending flag set by EI survives one full pass through this function
	// before IME flips, and DI in that slot cancels it.
	imeWasPending := c.imePending

	var stepErr error
	if c.IRQ.IME && c.IRQ.HasPending() {
		c.serviceInterrupt(bus)
	} else {
		opcode := c.fetch(bus)
		stepErr = c.execute(bus, opcode)
	}

	if imeWasPending && c.imePending {
		c.IRQ.IME = true
		c.imePending = false
	}

	return c.currentTick, stepErr
}

// fetch reads the opcode at PC and advances PC; execute charges the
// 4-cycle fetch cost so interrupt servicing can account its own timing.
func (c *CPU) fetch(bus Bus) uint8 {
	op := bus.Read(c.PC)
	c.PC++
	return op
}

// readOperand reads and consumes the next immediate byte, ticking 4
// cycles as the fetch does.
func (c *CPU) readOperand(bus Bus) uint8 {
	c.tick(bus, 4)
	v := bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) readOperand16(bus Bus) uint16 {
	lo := c.readOperand(bus)
	hi := c.readOperand(bus)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) readByte(bus Bus, addr uint16) uint8 {
	c.tick(bus, 4)
	return bus.Read(addr)
}

func (c *CPU) writeByte(bus Bus, addr uint16, v uint8) {
	c.tick(bus, 4)
	bus.Write(addr, v)
}

// tick accounts T-cycles against the instruction in progress. It does not
// itself advance peripherals: the host advances Timer/PPU/APU by the
// total Step() returns.
func (c *CPU) tick(bus Bus, n uint8) {
	c.currentTick += n
	c.Cycles += uint64(n)
}

// execute dispatches a fetched opcode (accounting the initial 4-cycle
// fetch) and returns an error only for one of the 11 illegal opcodes.
func (c *CPU) execute(bus Bus, opcode uint8) error {
	c.tick(bus, 4)
	currentPC := c.PC - 1

	if opcode == 0xCB {
		cb := c.readOperand(bus)
		instr := cbInstructionSet[cb]
		instr.fn(c, bus)
		return nil
	}

	instr := instructionSet[opcode]
	if instr.fn == nil {
		return &IllegalOpcodeError{Opcode: opcode, PC: currentPC}
	}
	instr.fn(c, bus)

	if c.Debug && instr.name == "LD B,B" {
		c.DebugBreakpoint = true
	}
	return nil
}

// serviceInterrupt dispatches the highest-priority pending interrupt:
// clears IME, pushes PC, jumps to the vector, clears the corresponding
// IF bit, and consumes 20 T-cycles total.
func (c *CPU) serviceInterrupt(bus Bus) {
	vector, flag, ok := c.IRQ.NextVector()
	if !ok {
		return
	}
	c.tick(bus, 8) // two idle M-cycles before the push, as on real hardware
	c.SP--
	c.writeByte(bus, c.SP, uint8(c.PC>>8))
	c.SP--
	c.writeByte(bus, c.SP, uint8(c.PC&0xFF))

	c.IRQ.Clear(flag)
	c.IRQ.IME = false
	c.PC = vector
	c.tick(bus, 4)
}

// enterHalt puts the CPU into the HALT state, called by the HALT
// instruction handler.
func (c *CPU) enterHalt() {
	c.halted = true
}

// enableIMEDelayed arms the EI one-instruction delay.
func (c *CPU) enableIMEDelayed() {
	c.imePending = true
}

// Package timer implements the Game Boy's DIV/TIMA/TMA/TAC timer,
// advanced by the bus once per batch of CPU cycles.
package timer

import "github.com/dmgcore/dmgemu/internal/interrupts"

// periods gives the T-cycle period selected by TAC's low two bits.
var periods = [4]uint16{1024, 16, 64, 256}

// Controller holds DIV/TIMA/TMA/TAC state.
type Controller struct {
	prescaler uint16 // internal 16-bit counter; DIV is its high byte
	tima      uint8
	tma       uint8
	tac       uint8

	irq *interrupts.Service
}

// NewController returns a new timer controller wired to the given
// interrupt service.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// Tick advances the timer by n T-cycles, applying the TIMA overflow/reload
// rule on every period boundary crossed.
func (c *Controller) Tick(n uint) {
	if c.tac&0x04 == 0 {
		c.prescaler += uint16(n)
		return
	}

	period := periods[c.tac&0x03]
	for i := uint(0); i < n; i++ {
		prev := c.prescaler
		c.prescaler++
		if prev%period == period-1 { // crossed a period boundary
			c.incrementTIMA()
		}
	}
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
	}
}

// DIV returns the current value of the DIV register (0xFF04).
func (c *Controller) DIV() uint8 {
	return uint8(c.prescaler >> 8)
}

// ResetDIV clears the internal prescaler, as any write to 0xFF04 does.
func (c *Controller) ResetDIV() {
	c.prescaler = 0
}

// TIMA returns the current value of the TIMA register (0xFF05).
func (c *Controller) TIMA() uint8 { return c.tima }

// SetTIMA writes the TIMA register directly (used by the bus on a CPU
// write to 0xFF05).
func (c *Controller) SetTIMA(v uint8) { c.tima = v }

// TMA returns the current value of the TMA register (0xFF06).
func (c *Controller) TMA() uint8 { return c.tma }

// SetTMA writes the TMA register (0xFF06).
func (c *Controller) SetTMA(v uint8) { c.tma = v }

// TAC returns the current value of the TAC register (0xFF07), with its
// unused upper bits read back as 1, matching real hardware.
func (c *Controller) TAC() uint8 { return c.tac | 0xF8 }

// SetTAC writes the low 3 bits of the TAC register (0xFF07).
func (c *Controller) SetTAC(v uint8) { c.tac = v & 0x07 }

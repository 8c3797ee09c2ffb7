// Package serial provides the link-cable stub: no second Game Boy is ever
// attached, but writing SC with the transfer-start bit set immediately
// "completes" the transfer by handing the pending byte to a sink and
// raising the serial interrupt.
package serial

import (
	"bytes"
	"io"

	"github.com/dmgcore/dmgemu/internal/interrupts"
)

// Controller holds the SB/SC registers and hands each transferred byte to
// its sink.
type Controller struct {
	sb uint8
	sc uint8

	irq *interrupts.Service
	// Sink receives each transferred byte. Defaults to an in-memory
	// buffer; the CLI points it at os.Stdout.
	Sink io.Writer
	log  bytes.Buffer
}

// NewController returns a serial controller that buffers transferred
// bytes in memory until a Sink is attached.
func NewController(irq *interrupts.Service) *Controller {
	c := &Controller{irq: irq, sc: 0x7E}
	c.Sink = &c.log
	return c
}

// ReadSB returns the current value of SB (0xFF01).
func (c *Controller) ReadSB() uint8 { return c.sb }

// WriteSB writes SB (0xFF01).
func (c *Controller) WriteSB(v uint8) { c.sb = v }

// ReadSC returns the current value of SC (0xFF02).
func (c *Controller) ReadSC() uint8 { return c.sc | 0x7E }

// WriteSC writes SC (0xFF02). Setting bit 7 (transfer start) completes
// the stub transfer immediately, whatever the clock bit says: the pending
// byte in SB is written to Sink, bit 7 is cleared, and the serial
// interrupt is raised.
func (c *Controller) WriteSC(v uint8) {
	c.sc = v & 0x81
	if c.sc&0x80 != 0 {
		c.Sink.Write([]byte{c.sb})
		c.sc &^= 0x80
		c.irq.Request(interrupts.SerialFlag)
	}
}

// Log returns everything written when Sink is the default in-memory
// buffer (useful for tests).
func (c *Controller) Log() []byte {
	return c.log.Bytes()
}

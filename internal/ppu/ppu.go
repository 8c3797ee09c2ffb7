// Package ppu implements the DMG pixel-processing unit: the scanline/mode
// state machine, background/window/sprite compositing, and STAT/VBlank
// interrupt generation.
package ppu

import "github.com/dmgcore/dmgemu/internal/interrupts"

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	dotsPerLine   = 456
	linesPerFrame = 154
	oamDots       = 80
	vramDotsBase  = 172
)

// PPU holds all video state: registers, VRAM, OAM and the framebuffer.
type PPU struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	LCDC, STAT, SCY, SCX, LY, LYC, BGP, OBP0, OBP1, WY, WX uint8

	mode    Mode
	lineDot uint16

	windowLineCounter uint8
	statLine          bool // previous level of the OR'd STAT interrupt sources

	// Framebuffer holds 2-bit shades (0-3), valid to read after VBlank.
	Framebuffer [ScreenHeight][ScreenWidth]uint8

	irq *interrupts.Service

	// dmaActive gates CPU OAM reads separately from PPU-mode gating;
	// set/cleared by the bus's DMA controller.
	dmaActive bool
}

// New returns a PPU with the LCD off, as after power-on before the boot
// ROM enables it. Callers that skip the boot ROM should call
// SetPostBootState.
func New(irq *interrupts.Service) *PPU {
	return &PPU{irq: irq, mode: ModeOAM}
}

// SetPostBootState applies the register values a real DMG leaves behind
// once its boot ROM hands off at 0x0100.
func (p *PPU) SetPostBootState() {
	p.LCDC = 0x91
	p.STAT = 0x85
	p.BGP = 0xFC
	p.mode = ModeOAM
}

// enabled reports whether LCDC bit 7 (LCD enable) is set.
func (p *PPU) enabled() bool { return bit(p.LCDC, lcdcEnable) }

// ReadVRAM returns a VRAM byte, gated to 0xFF during mode 3 while the LCD
// is on.
func (p *PPU) ReadVRAM(addr uint16) uint8 {
	if p.enabled() && p.mode == ModeVRAM {
		return 0xFF
	}
	return p.vram[addr&0x1FFF]
}

// WriteVRAM writes a VRAM byte, discarded during mode 3 while the LCD is on.
func (p *PPU) WriteVRAM(addr uint16, value uint8) {
	if p.enabled() && p.mode == ModeVRAM {
		return
	}
	p.vram[addr&0x1FFF] = value
}

// ReadOAM returns an OAM byte, gated to 0xFF during mode 2/3 while the LCD
// is on, and during an active OAM-DMA transfer.
func (p *PPU) ReadOAM(addr uint16) uint8 {
	if p.dmaActive || (p.enabled() && (p.mode == ModeOAM || p.mode == ModeVRAM)) {
		return 0xFF
	}
	return p.oam[addr&0xFF]
}

// WriteOAM writes an OAM byte, discarded during mode 2/3 while the LCD is
// on, unless the write comes from OAM DMA (DirectOAMWrite).
func (p *PPU) WriteOAM(addr uint16, value uint8) {
	if p.enabled() && (p.mode == ModeOAM || p.mode == ModeVRAM) {
		return
	}
	p.oam[addr&0xFF] = value
}

// DirectOAMWrite bypasses all gating; OAM DMA writes are always applied.
func (p *PPU) DirectOAMWrite(index int, value uint8) {
	p.oam[index&0xFF] = value
}

// DirectOAMRead bypasses gating, used by the bus to source OAM-DMA copies
// from OAM itself (DMA base 0xFE00-0xFFFF window would just re-copy OAM).
func (p *PPU) DirectOAMRead(index int) uint8 {
	return p.oam[index&0xFF]
}

// SetDMAActive is called by the bus's OAM-DMA controller.
func (p *PPU) SetDMAActive(active bool) { p.dmaActive = active }

// Mode returns the current PPU mode.
func (p *PPU) Mode() Mode { return p.mode }

// ReadLCDC, etc. are plain register reads exposed for the bus's I/O table.
func (p *PPU) ReadLCDC() uint8 { return p.LCDC }

// WriteLCDC applies an LCDC write. Turning the LCD off resets mode to 0,
// LY to 0, and the dot counter to 0.
func (p *PPU) WriteLCDC(value uint8) {
	wasOn := p.enabled()
	p.LCDC = value
	if wasOn && !p.enabled() {
		p.mode = ModeHBlank
		p.LY = 0
		p.lineDot = 0
		p.windowLineCounter = 0
	}
}

// ReadSTAT composes the live STAT value: bit 7 always set, bits 3-6 as
// written, bit 2 the LY==LYC coincidence flag, bits 1-0 the current mode.
func (p *PPU) ReadSTAT() uint8 {
	v := uint8(0x80) | (p.STAT & 0x78) | uint8(p.mode)
	if p.LY == p.LYC {
		v |= 1 << statCoincidence
	}
	return v
}

// WriteSTAT applies a STAT write; only bits 3-6 are writable.
func (p *PPU) WriteSTAT(value uint8) {
	p.STAT = value & 0x78
}

// ReadLY returns the current scanline.
func (p *PPU) ReadLY() uint8 { return p.LY }

// WriteLY resets LY, the dot counter and the mode, as any write to LY does
// on real hardware.
func (p *PPU) WriteLY(uint8) {
	p.LY = 0
	p.lineDot = 0
	p.mode = ModeOAM
}

// mode3Length returns the length of mode 3 for the current scanline,
// 172 dots plus the SCX fine-scroll penalty.
func (p *PPU) mode3Length() uint16 {
	return uint16(vramDotsBase) + uint16(p.SCX&0x07)
}

// Tick advances the PPU by n T-cycles, driving the mode state machine and
// rendering a scanline on every mode-3-to-0 transition.
func (p *PPU) Tick(n uint) {
	if !p.enabled() {
		return
	}
	remaining := int(n)
	for remaining > 0 {
		step := uint16(remaining)
		// never step past the next mode/line boundary in one jump, so
		// render/interrupt edges land exactly where they should.
		if bound := p.nextBoundary(); step > bound {
			step = bound
		}
		if step == 0 {
			step = 1
		}
		p.lineDot += step
		remaining -= int(step)
		p.settle()
	}
}

// nextBoundary returns how many dots remain until the next mode
// transition or line wrap, used to avoid overshooting render/IRQ edges
// within a single Tick call.
func (p *PPU) nextBoundary() uint16 {
	if p.LY >= 144 {
		return dotsPerLine - p.lineDot
	}
	m3 := p.mode3Length()
	switch {
	case p.lineDot < oamDots:
		return oamDots - p.lineDot
	case p.lineDot < oamDots+m3:
		return oamDots + m3 - p.lineDot
	default:
		return dotsPerLine - p.lineDot
	}
}

// settle recomputes mode from lineDot/LY, firing the renderer and
// interrupts on every edge crossed.
func (p *PPU) settle() {
	if p.lineDot >= dotsPerLine {
		p.lineDot -= dotsPerLine
		p.LY++
		if p.LY == linesPerFrame {
			p.LY = 0
			p.windowLineCounter = 0
		}
	}

	var newMode Mode
	if p.LY >= 144 {
		newMode = ModeVBlank
	} else {
		m3 := p.mode3Length()
		switch {
		case p.lineDot < oamDots:
			newMode = ModeOAM
		case p.lineDot < oamDots+m3:
			newMode = ModeVRAM
		default:
			newMode = ModeHBlank
		}
	}

	if newMode != p.mode {
		prev := p.mode
		p.mode = newMode
		if prev == ModeVRAM && newMode == ModeHBlank {
			p.renderScanline()
		}
		if newMode == ModeVBlank {
			p.irq.Request(interrupts.VBlankFlag)
		}
	}

	p.updateStatIRQ()
}

// updateStatIRQ raises IF.LCD on any rising edge of the OR of the STAT
// interrupt sources enabled in the STAT register.
func (p *PPU) updateStatIRQ() {
	level := false
	if bit(p.STAT, statHBlankInt) && p.mode == ModeHBlank {
		level = true
	}
	if bit(p.STAT, statVBlankInt) && p.mode == ModeVBlank {
		level = true
	}
	if bit(p.STAT, statOAMInterrupt) && p.mode == ModeOAM {
		level = true
	}
	if bit(p.STAT, statLYCInterrupt) && p.LY == p.LYC {
		level = true
	}
	if level && !p.statLine {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.statLine = level
}

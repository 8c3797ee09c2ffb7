// Package bus implements the Game Boy's unified 16-bit address space: it
// owns WRAM/HRAM and arbitrates every CPU access across the cartridge,
// PPU, APU, timer, joypad, serial port, and interrupt registers, plus the
// OAM DMA controller.
package bus

import (
	"sync"

	"github.com/dmgcore/dmgemu/internal/apu"
	"github.com/dmgcore/dmgemu/internal/cartridge"
	"github.com/dmgcore/dmgemu/internal/interrupts"
	"github.com/dmgcore/dmgemu/internal/joypad"
	"github.com/dmgcore/dmgemu/internal/ppu"
	"github.com/dmgcore/dmgemu/internal/serial"
	"github.com/dmgcore/dmgemu/internal/timer"
)

// dmaTotalCycles is how many T-cycles an OAM DMA transfer occupies: 160
// bytes at one byte per 4 cycles.
const dmaTotalCycles = 640

// Bus is the single aggregate all memory-mapped components hang off of.
// The CPU never imports it directly: it talks to the narrower cpu.Bus
// interface this type satisfies.
type Bus struct {
	Cart *cartridge.Cartridge

	wram [0x2000]uint8
	hram [0x7F]uint8

	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Controller
	Joypad *joypad.State
	Serial *serial.Controller
	IRQ    *interrupts.Service

	// apuMu guards APU register/sample access shared with a host audio
	// callback goroutine.
	apuMu sync.Mutex

	dmaActive      bool
	dmaSource      uint16
	dmaBytesDone   int
	dmaCycleInByte int
	dmaLastWritten uint8
}

// New builds a fully wired bus around the given cartridge.
func New(cart *cartridge.Cartridge) *Bus {
	irq := interrupts.NewService()
	return &Bus{
		Cart:   cart,
		PPU:    ppu.New(irq),
		APU:    apu.New(),
		Timer:  timer.NewController(irq),
		Joypad: joypad.New(),
		Serial: serial.NewController(irq),
		IRQ:    irq,
	}
}

// Reset applies the post-boot-ROM state the CPU's own Reset assumes.
func (b *Bus) Reset() {
	b.PPU.SetPostBootState()
}

// Read services a CPU memory read across the whole address space.
func (b *Bus) Read(addr uint16) uint8 {
	if b.dmaActive && addr < 0xFF80 {
		return 0xFF
	}
	switch {
	case addr < 0x8000:
		return b.Cart.Read(addr)
	case addr < 0xA000:
		return b.PPU.ReadVRAM(addr - 0x8000)
	case addr < 0xC000:
		return b.Cart.Read(addr)
	case addr < 0xE000:
		return b.wram[addr-0xC000]
	case addr < 0xFE00:
		return b.wram[addr-0xE000] // echo RAM, 0xE000-0xFDFF mirrors 0xC000-0xDDFF
	case addr < 0xFEA0:
		return b.PPU.ReadOAM(addr - 0xFE00)
	case addr < 0xFF00:
		return 0xFF // unusable region
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.IRQ.Read(addr)
	}
}

// Write services a CPU memory write across the whole address space. DMA
// gates reads only; writes still land.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000:
		b.Cart.Write(addr, value)
	case addr < 0xA000:
		b.PPU.WriteVRAM(addr-0x8000, value)
	case addr < 0xC000:
		b.Cart.Write(addr, value)
	case addr < 0xE000:
		b.wram[addr-0xC000] = value
	case addr < 0xFE00:
		b.wram[addr-0xE000] = value
	case addr < 0xFEA0:
		b.PPU.WriteOAM(addr-0xFE00, value)
	case addr < 0xFF00:
		// unusable region, writes discarded
	case addr < 0xFF80:
		b.writeIO(addr, value)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = value
	default:
		b.IRQ.Write(addr, value)
	}
}

// readIO dispatches the 0xFF00-0xFF7F I/O register window.
func (b *Bus) readIO(addr uint16) uint8 {
	switch {
	case addr == 0xFF00:
		return b.Joypad.Read()
	case addr == 0xFF01:
		return b.Serial.ReadSB()
	case addr == 0xFF02:
		return b.Serial.ReadSC()
	case addr == 0xFF04:
		return b.Timer.DIV()
	case addr == 0xFF05:
		return b.Timer.TIMA()
	case addr == 0xFF06:
		return b.Timer.TMA()
	case addr == 0xFF07:
		return b.Timer.TAC()
	case addr == 0xFF0F:
		return b.IRQ.Read(addr)
	case addr >= 0xFF10 && addr <= 0xFF26:
		b.apuMu.Lock()
		defer b.apuMu.Unlock()
		return b.APU.Read(addr)
	case addr >= 0xFF30 && addr <= 0xFF3F:
		return 0xFF // wave RAM, channel 3 is out of scope
	case addr == 0xFF40:
		return b.PPU.ReadLCDC()
	case addr == 0xFF41:
		return b.PPU.ReadSTAT()
	case addr == 0xFF42:
		return b.PPU.SCY
	case addr == 0xFF43:
		return b.PPU.SCX
	case addr == 0xFF44:
		return b.PPU.ReadLY()
	case addr == 0xFF45:
		return b.PPU.LYC
	case addr == 0xFF46:
		return b.dmaLastWritten
	case addr == 0xFF47:
		return b.PPU.BGP
	case addr == 0xFF48:
		return b.PPU.OBP0
	case addr == 0xFF49:
		return b.PPU.OBP1
	case addr == 0xFF4A:
		return b.PPU.WY
	case addr == 0xFF4B:
		return b.PPU.WX
	}
	return 0xFF
}

// writeIO dispatches the 0xFF00-0xFF7F I/O register window.
func (b *Bus) writeIO(addr uint16, value uint8) {
	switch {
	case addr == 0xFF00:
		b.Joypad.Write(value)
	case addr == 0xFF01:
		b.Serial.WriteSB(value)
	case addr == 0xFF02:
		b.Serial.WriteSC(value)
	case addr == 0xFF04:
		b.Timer.ResetDIV()
	case addr == 0xFF05:
		b.Timer.SetTIMA(value)
	case addr == 0xFF06:
		b.Timer.SetTMA(value)
	case addr == 0xFF07:
		b.Timer.SetTAC(value)
	case addr == 0xFF0F:
		b.IRQ.Write(addr, value)
	case addr >= 0xFF10 && addr <= 0xFF26:
		b.apuMu.Lock()
		b.APU.Write(addr, value)
		b.apuMu.Unlock()
	case addr >= 0xFF30 && addr <= 0xFF3F:
		// wave RAM, channel 3 is out of scope
	case addr == 0xFF40:
		b.PPU.WriteLCDC(value)
	case addr == 0xFF41:
		b.PPU.WriteSTAT(value)
	case addr == 0xFF42:
		b.PPU.SCY = value
	case addr == 0xFF43:
		b.PPU.SCX = value
	case addr == 0xFF44:
		b.PPU.WriteLY(value)
	case addr == 0xFF45:
		b.PPU.LYC = value
	case addr == 0xFF46:
		b.startDMA(value)
	case addr == 0xFF47:
		b.PPU.BGP = value
	case addr == 0xFF48:
		b.PPU.OBP0 = value
	case addr == 0xFF49:
		b.PPU.OBP1 = value
	case addr == 0xFF4A:
		b.PPU.WY = value
	case addr == 0xFF4B:
		b.PPU.WX = value
	}
}

// startDMA begins an OAM DMA transfer from value*0x100, gating the rest
// of the bus for 640 T-cycles.
func (b *Bus) startDMA(value uint8) {
	b.dmaActive = true
	b.dmaSource = uint16(value) << 8
	b.dmaLastWritten = value
	b.dmaBytesDone = 0
	b.dmaCycleInByte = 0
	b.PPU.SetDMAActive(true)
}

// dmaSourceRead reads a DMA source byte, bypassing the DMA read gate that
// a regular Read applies. VRAM sources still go through PPU.ReadVRAM, so
// they read 0xFF while the LCD is on and the PPU is in mode 3.
func (b *Bus) dmaSourceRead(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return b.Cart.Read(addr)
	case addr < 0xA000:
		return b.PPU.ReadVRAM(addr - 0x8000)
	case addr < 0xC000:
		return b.Cart.Read(addr)
	case addr < 0xE000:
		return b.wram[addr-0xC000]
	case addr < 0xFE00:
		return b.wram[addr-0xE000]
	case addr < 0xFEA0:
		return b.PPU.DirectOAMRead(int(addr - 0xFE00))
	default:
		return 0xFF
	}
}

func (b *Bus) stepDMA(cycles uint) {
	if !b.dmaActive {
		return
	}
	for i := uint(0); i < cycles && b.dmaActive; i++ {
		b.dmaCycleInByte++
		if b.dmaCycleInByte < 4 {
			continue
		}
		b.dmaCycleInByte = 0
		b.PPU.DirectOAMWrite(b.dmaBytesDone, b.dmaSourceRead(b.dmaSource+uint16(b.dmaBytesDone)))
		b.dmaBytesDone++
		if b.dmaBytesDone >= 160 {
			b.dmaActive = false
			b.PPU.SetDMAActive(false)
		}
	}
}

// Step fans the T-cycles a CPU instruction consumed out to every
// peripheral in lockstep; the CPU never ticks its peers directly.
func (b *Bus) Step(cycles uint) {
	b.stepDMA(cycles)
	b.Timer.Tick(cycles)
	b.PPU.Tick(cycles)

	b.apuMu.Lock()
	b.APU.Tick(cycles)
	b.apuMu.Unlock()
}

// LockAPU and UnlockAPU let a host audio callback goroutine safely call
// APU.Sample()/FillSamples concurrently with CPU emulation.
func (b *Bus) LockAPU()   { b.apuMu.Lock() }
func (b *Bus) UnlockAPU() { b.apuMu.Unlock() }

// Package emulator assembles a CPU and a Bus into the single runnable
// machine the CLI and debug server drive.
package emulator

import (
	"github.com/dmgcore/dmgemu/internal/bus"
	"github.com/dmgcore/dmgemu/internal/cartridge"
	"github.com/dmgcore/dmgemu/internal/cpu"
	"github.com/dmgcore/dmgemu/internal/ppu"
)

// GameBoy owns one CPU and one Bus and drives them in lockstep: every
// Step executes one CPU instruction (or services one interrupt, or
// idles one tick under HALT) and immediately fans its cycle cost out to
// the rest of the machine.
type GameBoy struct {
	CPU *cpu.CPU
	Bus *bus.Bus

	// speed is a software playback-rate multiplier applied by the host's
	// pacing loop; the emulator core itself is always cycle-exact.
	speed float64

	// FrameCount counts completed video frames, used by RunFrame callers
	// that want a coarse progress readout.
	FrameCount uint64
}

// Opt configures a GameBoy at construction time.
type Opt func(gb *GameBoy)

// WithDebug arms the CPU's LD B,B debug breakpoint.
func WithDebug() Opt {
	return func(gb *GameBoy) { gb.CPU.Debug = true }
}

// WithSpeed sets the host playback-rate multiplier (1.0 is real time).
func WithSpeed(speed float64) Opt {
	return func(gb *GameBoy) { gb.speed = speed }
}

// WithVolume sets the APU's post-mix software gain.
func WithVolume(gain float64) Opt {
	return func(gb *GameBoy) { gb.Bus.APU.Gain = gain }
}

// New constructs a GameBoy around the given cartridge, applies the
// post-boot register state, and resets the CPU to 0x0100.
func New(cart *cartridge.Cartridge, opts ...Opt) *GameBoy {
	b := bus.New(cart)
	b.Reset()
	c := cpu.NewCPU(b.IRQ)
	c.Reset()

	gb := &GameBoy{CPU: c, Bus: b}
	for _, opt := range opts {
		opt(gb)
	}
	return gb
}

// Speed returns the configured playback-rate multiplier.
func (gb *GameBoy) Speed() float64 { return gb.speed }

// Step executes exactly one CPU step and advances every peripheral by
// its cycle cost. It returns the number of T-cycles consumed.
func (gb *GameBoy) Step() (uint8, error) {
	cycles, err := gb.CPU.Step(gb.Bus)
	gb.Bus.Step(uint(cycles))
	return cycles, err
}

// RunFrame steps the machine until the PPU next enters VBlank (LY reaching
// 144) after having been outside it, so back-to-back calls each cover one
// VBlank-to-VBlank frame, or until an instruction returns an error.
func (gb *GameBoy) RunFrame() error {
	startedInVBlank := gb.Bus.PPU.Mode() == ppu.ModeVBlank
	sawNonVBlank := !startedInVBlank
	for {
		_, err := gb.Step()
		if err != nil {
			return err
		}
		mode := gb.Bus.PPU.Mode()
		if mode != ppu.ModeVBlank {
			sawNonVBlank = true
		} else if sawNonVBlank {
			gb.FrameCount++
			return nil
		}
	}
}

// SetButtons forwards the host's live button state to the joypad.
func (gb *GameBoy) SetButtons(dpad, buttons uint8) {
	gb.Bus.Joypad.SetButtons(dpad, buttons)
}

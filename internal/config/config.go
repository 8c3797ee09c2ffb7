// Package config assembles the host-level settings the CLI entry point
// accepts into the options the emulator package consumes.
package config

import (
	"io"
	"os"

	"github.com/dmgcore/dmgemu/internal/emulator"
)

// Config holds everything the CLI parses out of flags before a cartridge
// is even loaded.
type Config struct {
	ROMPath    string
	Speed      float64
	Volume     float64
	Palette    string
	CheatsPath string
	DebugAddr  string
	Headless   bool
	SerialSink io.Writer
}

// Option mutates a Config during construction.
type Option func(*Config)

// Default returns the Config a bare `dmgemu run <rom>` invocation uses.
func Default(romPath string) *Config {
	return &Config{
		ROMPath:    romPath,
		Speed:      1.0,
		Volume:     1.0,
		Palette:    "classic",
		SerialSink: os.Stdout,
	}
}

// New builds a Config from a ROM path and a set of options.
func New(romPath string, opts ...Option) *Config {
	c := Default(romPath)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSpeed overrides the playback-rate multiplier.
func WithSpeed(speed float64) Option {
	return func(c *Config) { c.Speed = speed }
}

// WithVolume overrides the software output gain.
func WithVolume(volume float64) Option {
	return func(c *Config) { c.Volume = volume }
}

// WithPalette selects the screenshot palette by name.
func WithPalette(name string) Option {
	return func(c *Config) { c.Palette = name }
}

// WithCheats points the cheat engine at a cheat code list or Lua script.
func WithCheats(path string) Option {
	return func(c *Config) { c.CheatsPath = path }
}

// WithDebugAddr arms the websocket debug telemetry server on the given
// address.
func WithDebugAddr(addr string) Option {
	return func(c *Config) { c.DebugAddr = addr }
}

// WithHeadless disables anything that would otherwise try to open a
// window or audio device.
func WithHeadless() Option {
	return func(c *Config) { c.Headless = true }
}

// WithSerialSink overrides where serial-port bytes are written.
func WithSerialSink(w io.Writer) Option {
	return func(c *Config) { c.SerialSink = w }
}

// EmulatorOpts translates this Config into the emulator package's own
// options, the boundary between host configuration and the emulator
// core.
func (c *Config) EmulatorOpts() []emulator.Opt {
	return []emulator.Opt{
		emulator.WithSpeed(c.Speed),
		emulator.WithVolume(c.Volume),
	}
}

// Command dmgemu runs a DMG Game Boy ROM headlessly, optionally applying
// cheats and exposing a websocket debug telemetry feed.
package main

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/dmgcore/dmgemu/internal/cartridge"
	"github.com/dmgcore/dmgemu/internal/cheats"
	"github.com/dmgcore/dmgemu/internal/config"
	"github.com/dmgcore/dmgemu/internal/debugserver"
	"github.com/dmgcore/dmgemu/internal/display"
	"github.com/dmgcore/dmgemu/internal/emulator"
	"github.com/dmgcore/dmgemu/internal/logging"
	"github.com/dmgcore/dmgemu/internal/romfile"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgemu"
	app.Usage = "a Game Boy (DMG) emulator core"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "run a ROM to completion or until interrupted",
			ArgsUsage: "<rom-path>",
			Flags: []cli.Flag{
				cli.Float64Flag{Name: "speed", Value: 1.0, Usage: "playback-rate multiplier"},
				cli.Float64Flag{Name: "volume", Value: 1.0, Usage: "software output gain"},
				cli.StringFlag{Name: "palette", Value: "classic", Usage: "screenshot palette: classic or gray"},
				cli.StringFlag{Name: "cheats", Usage: "path to a cheat code list or .lua script"},
				cli.StringFlag{Name: "debug-addr", Usage: "address to serve websocket telemetry on, e.g. :8090"},
				cli.BoolFlag{Name: "headless", Usage: "never attempt to open a window or audio device"},
				cli.BoolFlag{Name: "debug", Usage: "arm the LD B,B debug breakpoint"},
			},
			Action: runCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Log.Errorf("dmgemu: %v", err)
		os.Exit(1)
	}
}

func runCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("dmgemu run: a ROM path is required")
	}
	romPath := c.Args().Get(0)

	if c.Bool("debug") {
		logging.SetDebug()
	}

	opts := []config.Option{
		config.WithSpeed(c.Float64("speed")),
		config.WithVolume(c.Float64("volume")),
		config.WithPalette(c.String("palette")),
	}
	if c.Bool("headless") {
		opts = append(opts, config.WithHeadless())
	}
	if cheatsPath := c.String("cheats"); cheatsPath != "" {
		opts = append(opts, config.WithCheats(cheatsPath))
	}
	if debugAddr := c.String("debug-addr"); debugAddr != "" {
		opts = append(opts, config.WithDebugAddr(debugAddr))
	}
	cfg := config.New(romPath, opts...)

	romData, err := romfile.Load(cfg.ROMPath)
	if err != nil {
		return err
	}
	cart, err := cartridge.Load(romData)
	if err != nil {
		return err
	}
	if err := cart.AttachSave(cfg.ROMPath + ".sav"); err != nil {
		logging.Log.Warnf("dmgemu: could not attach save file: %v", err)
	}
	defer cart.Close()

	emuOpts := cfg.EmulatorOpts()
	if c.Bool("debug") {
		emuOpts = append(emuOpts, emulator.WithDebug())
	}
	gb := emulator.New(cart, emuOpts...)
	gb.Bus.Serial.Sink = cfg.SerialSink

	// --cheats takes either a static code list or a Lua script, decided
	// by extension: .lua scripts get an onFrame() hook with bus access,
	// anything else is parsed as Game Genie/GameShark codes.
	var patches *cheats.List
	var script *cheats.Script
	if cfg.CheatsPath != "" {
		if filepath.Ext(cfg.CheatsPath) == ".lua" {
			script, err = cheats.LoadScriptFile(cfg.CheatsPath, gb.Bus)
			if err != nil {
				return err
			}
			defer script.Close()
		} else {
			patches, err = cheats.LoadFile(cfg.CheatsPath)
			if err != nil {
				return err
			}
		}
	}

	if cfg.DebugAddr != "" {
		srv := debugserver.New(gb)
		go func() {
			if err := srv.ListenAndServe(cfg.DebugAddr); err != nil {
				logging.Log.Errorf("dmgemu: debug server stopped: %v", err)
			}
		}()
	}

	logging.Log.Infof("dmgemu: running %s (%s)", cfg.ROMPath, cart.Header.Title)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	// Pace frames against the DMG's 70224-dot period (~59.7275 Hz),
	// scaled by the --speed multiplier.
	dotsPerFrame, cyclesPerSecond := 70224.0, 4194304.0
	framePeriod := time.Duration(float64(time.Second) * dotsPerFrame / cyclesPerSecond)
	if s := gb.Speed(); s > 0 {
		framePeriod = time.Duration(float64(framePeriod) / s)
	}
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return writeScreenshot(cfg, gb)
		case <-ticker.C:
		}
		if err := gb.RunFrame(); err != nil {
			return err
		}
		if patches != nil {
			patches.Apply(gb.Bus)
		}
		if script != nil {
			if err := script.OnFrame(); err != nil {
				return err
			}
		}
	}
}

// writeScreenshot dumps the current framebuffer as a PNG next to the ROM
// on a clean interrupt, headless mode's only way to inspect what was on
// screen at quit time.
func writeScreenshot(cfg *config.Config, gb *emulator.GameBoy) error {
	f, err := os.Create(cfg.ROMPath + ".png")
	if err != nil {
		return err
	}
	defer f.Close()
	logging.Log.Infof("dmgemu: interrupted, writing %s", f.Name())
	return display.WritePNG(f, gb.Bus.PPU.Framebuffer, display.Named(cfg.Palette))
}

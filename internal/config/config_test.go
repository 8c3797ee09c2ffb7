package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	c := Default("game.gb")
	if c.Speed != 1.0 || c.Volume != 1.0 {
		t.Fatalf("got Speed=%v Volume=%v, want 1.0/1.0", c.Speed, c.Volume)
	}
	if c.Headless {
		t.Fatal("Default() should not be headless")
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := New("game.gb",
		WithSpeed(2.0),
		WithVolume(0.5),
		WithHeadless(),
		WithPalette("gray"),
		WithCheats("cheats.txt"),
		WithDebugAddr(":8090"),
	)
	if c.Speed != 2.0 || c.Volume != 0.5 || !c.Headless {
		t.Fatalf("options did not apply: %+v", c)
	}
	if c.Palette != "gray" || c.CheatsPath != "cheats.txt" || c.DebugAddr != ":8090" {
		t.Fatalf("string options did not apply: %+v", c)
	}
}

func TestEmulatorOptsCarriesSpeedAndVolume(t *testing.T) {
	c := New("game.gb", WithSpeed(1.5))
	opts := c.EmulatorOpts()
	if len(opts) != 2 {
		t.Fatalf("EmulatorOpts() returned %d options, want 2", len(opts))
	}
}

// Package display turns a PPU framebuffer of 2-bit shade indices into a
// host-presentable image. It is headless by design: the actual window
// belongs to the host, so this package stops at producing pixels rather
// than opening one.
package display

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/dmgcore/dmgemu/internal/ppu"
)

// Palette maps the four 2-bit shade indices (0 lightest, 3 darkest) to
// display colors.
type Palette [4]color.RGBA

// ClassicGreen approximates the original DMG's unlit LCD tint.
var ClassicGreen = Palette{
	rgba(colornames.Honeydew),
	rgba(colornames.Darkseagreen),
	rgba(colornames.Darkolivegreen),
	rgba(colornames.Darkslategray),
}

// Grayscale is a plain 4-shade gray ramp.
var Grayscale = Palette{
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0xAA, 0xAA, 0xAA, 0xFF},
	{0x55, 0x55, 0x55, 0xFF},
	{0x00, 0x00, 0x00, 0xFF},
}

// Named returns the palette registered under a CLI-friendly name,
// defaulting to ClassicGreen for anything unrecognized.
func Named(name string) Palette {
	switch strings.ToLower(name) {
	case "gray", "grey", "grayscale":
		return Grayscale
	}
	return ClassicGreen
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// Render converts a PPU framebuffer into an RGBA image using pal.
func Render(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			img.SetRGBA(x, y, pal[frame[y][x]&0x03])
		}
	}
	return img
}

// WritePNG renders frame with pal and encodes it as a PNG to w, used by
// the CLI's screenshot-on-interrupt path and by tests asserting on
// rendered output.
func WritePNG(w io.Writer, frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal Palette) error {
	return png.Encode(w, Render(frame, pal))
}

package cheats

import (
	"encoding/hex"
	"fmt"
)

// isGameSharkCode reports whether code looks like a GameShark cheat: 8
// plain hex digits, no separators.
func isGameSharkCode(code string) bool {
	if len(code) != 8 {
		return false
	}
	_, err := hex.DecodeString(code)
	return err == nil
}

// decodeGameShark decodes an 8-hex-digit GameShark code into an
// unconditional write. The classic DMG GameShark layout packs a RAM-bank
// selector, a new value, and a little-endian address into four bytes;
// the bank selector is ignored here since this emulator has no
// GameShark-specific RAM-bank indirection to apply it to.
func decodeGameShark(code string) (Patch, error) {
	raw, err := hex.DecodeString(code)
	if err != nil || len(raw) != 4 {
		return Patch{}, fmt.Errorf("not a valid GameShark code")
	}
	value := raw[1]
	address := uint16(raw[3])<<8 | uint16(raw[2])
	return Patch{
		Address:     address,
		Value:       value,
		Description: "GameShark " + code,
	}, nil
}

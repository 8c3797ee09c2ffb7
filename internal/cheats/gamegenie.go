package cheats

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeGameGenie decodes a Game Genie code: nine hex digits formatted
// ABC-DEF-GHI, or the short six-digit ABC-DEF form. AB is the new data,
// FCDE is the memory address XORed with 0xF000 (the cartridge stores the
// address digits as CDEF), the old data is (GI ^ 0xBA) << 2, and H is
// unused (possibly a checksum).
func decodeGameGenie(code string) (Patch, error) {
	raw := strings.ToUpper(strings.ReplaceAll(code, "-", ""))
	if len(raw) != 6 && len(raw) != 9 {
		return Patch{}, fmt.Errorf("not a valid Game Genie code")
	}

	newData, err := strconv.ParseUint(raw[0:2], 16, 8)
	if err != nil {
		return Patch{}, fmt.Errorf("bad data digits: %w", err)
	}

	// reorganize CDEF to FCDE before undoing the address scramble
	fcde := raw[5:6] + raw[2:5]
	addr, err := strconv.ParseUint(fcde, 16, 16)
	if err != nil {
		return Patch{}, fmt.Errorf("bad address digits: %w", err)
	}

	p := Patch{
		Address:     uint16(addr) ^ 0xF000,
		Value:       uint8(newData),
		Description: "Game Genie " + code,
	}

	if len(raw) == 9 {
		gi := raw[6:7] + raw[8:9]
		oldData, err := strconv.ParseUint(gi, 16, 8)
		if err != nil {
			return Patch{}, fmt.Errorf("bad old-data digits: %w", err)
		}
		p.Compare = (uint8(oldData) ^ 0xBA) << 2
		p.HasCompare = true
	}
	return p, nil
}

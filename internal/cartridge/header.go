package cartridge

import "fmt"

// Kind identifies which mapper a cartridge uses, decoded from header byte
// 0x0147.
type Kind uint8

const (
	None Kind = iota
	MBC1
	MBC3
	MBC5
)

func (k Kind) String() string {
	switch k {
	case None:
		return "ROM"
	case MBC1:
		return "MBC1"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	}
	return "unknown"
}

// mapperTable maps the raw 0x0147 byte to the mapper kind and whether the
// cartridge carries a battery (relevant only to whether we persist RAM).
var mapperTable = map[uint8]struct {
	kind    Kind
	battery bool
}{
	0x00: {None, false},
	0x01: {MBC1, false},
	0x02: {MBC1, false},
	0x03: {MBC1, true},
	0x0F: {MBC3, true},
	0x10: {MBC3, true},
	0x11: {MBC3, false},
	0x12: {MBC3, false},
	0x13: {MBC3, true},
	0x19: {MBC5, false},
	0x1A: {MBC5, false},
	0x1B: {MBC5, true},
	0x1C: {MBC5, false},
	0x1D: {MBC5, false},
	0x1E: {MBC5, true},
}

// ramSizeTable maps header byte 0x0149 to external RAM size in bytes.
var ramSizeTable = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024, // unofficial but seen in the wild
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed cartridge header at 0x0100-0x014F.
type Header struct {
	Title            string
	ManufacturerCode string
	CGBFlag          uint8
	NewLicenseeCode  string
	SGBFlag          bool
	RawType          uint8
	Kind             Kind
	Battery          bool
	ROMBanks         int
	RAMSize          int
	OldLicenseeCode  uint8
	MaskROMVersion   uint8
	HeaderChecksum   uint8
	GlobalChecksum   uint16
	ChecksumValid    bool
}

// MinHeaderLen is the minimum length a ROM image must have to contain a
// full header.
const MinHeaderLen = 0x0150

// parseHeader decodes the header embedded in a full ROM image.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < MinHeaderLen {
		return Header{}, fmt.Errorf("cartridge: rom too small to contain a header (%d bytes)", len(rom))
	}

	h := Header{}
	h.CGBFlag = rom[0x0143]
	if h.CGBFlag == 0x80 || h.CGBFlag == 0xC0 {
		h.Title = string(trimZero(rom[0x0134:0x0143]))
	} else {
		h.Title = string(trimZero(rom[0x0134:0x0144]))
	}
	h.ManufacturerCode = string(trimZero(rom[0x013F:0x0143]))
	h.NewLicenseeCode = string(rom[0x0144:0x0146])
	h.SGBFlag = rom[0x0146] == 0x03
	h.RawType = rom[0x0147]

	entry, ok := mapperTable[h.RawType]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: unsupported mapper byte 0x%02X", h.RawType)
	}
	h.Kind = entry.kind
	h.Battery = entry.battery

	h.ROMBanks = 2 << rom[0x0148] // actual banks = 2^(1+value)
	h.RAMSize = ramSizeTable[rom[0x0149]]
	h.OldLicenseeCode = rom[0x014B]
	h.MaskROMVersion = rom[0x014C]
	h.HeaderChecksum = rom[0x014D]
	h.GlobalChecksum = uint16(rom[0x014E])<<8 | uint16(rom[0x014F])

	sum := uint8(0)
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	h.ChecksumValid = sum == h.HeaderChecksum

	return h, nil
}

func trimZero(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

func (h Header) String() string {
	return fmt.Sprintf("%s [%s, %d ROM banks, %d bytes RAM]", h.Title, h.Kind, h.ROMBanks, h.RAMSize)
}

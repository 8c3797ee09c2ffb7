package cartridge

// mbc5Mapper implements MBC5 bank switching. Unlike MBC1/MBC3, a bank
// value of 0 is a legal ROM bank on MBC5: no 0-to-1 remapping quirk.
type mbc5Mapper struct {
	rom []byte
	ram []byte

	ramEnable bool
	romBankLo uint8 // 0x2000-0x2FFF
	romBankHi uint8 // 0x3000-0x3FFF, bit 8 of the ROM bank
	ramBank   uint8 // 0x4000-0x5FFF, 4 bits

	romBankCount int
	ramBankCount int
}

func newMBC5Mapper(rom []byte, ramSize int) *mbc5Mapper {
	return &mbc5Mapper{
		rom:          rom,
		ram:          make([]byte, ramSize),
		romBankLo:    1,
		romBankCount: len(rom) / 0x4000,
		ramBankCount: ramSize / 0x2000,
	}
}

func (m *mbc5Mapper) bank() int {
	return int(m.romBankHi&0x01)<<8 | int(m.romBankLo)
}

func (m *mbc5Mapper) ReadROM(addr uint16) uint8 {
	var offset int
	if addr < 0x4000 {
		offset = int(addr)
	} else {
		offset = romBankOffset(m.bank(), m.romBankCount) + int(addr-0x4000)
	}
	if offset < len(m.rom) {
		return m.rom[offset]
	}
	return 0xFF
}

func (m *mbc5Mapper) WriteControl(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnable = value&0x0F == 0x0A
	case addr < 0x3000:
		m.romBankLo = value
	case addr < 0x4000:
		m.romBankHi = value & 0x01
	case addr < 0x6000:
		m.ramBank = value & 0x0F
	}
}

func (m *mbc5Mapper) ReadRAM(addr uint16) uint8 {
	if !m.ramEnable || m.ramBankCount == 0 {
		return 0xFF
	}
	offset := int(m.ramBank%uint8(max1(m.ramBankCount)))*0x2000 + int(addr-0xA000)
	if offset < len(m.ram) {
		return m.ram[offset]
	}
	return 0xFF
}

func (m *mbc5Mapper) WriteRAM(addr uint16, value uint8) {
	if !m.ramEnable || m.ramBankCount == 0 {
		return
	}
	offset := int(m.ramBank%uint8(max1(m.ramBankCount)))*0x2000 + int(addr-0xA000)
	if offset < len(m.ram) {
		m.ram[offset] = value
	}
}

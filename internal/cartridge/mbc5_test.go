package cartridge

import "testing"

func TestMBC5BankZeroIsLegal(t *testing.T) {
	m := newMBC5Mapper(markedROM(4), 0)
	m.WriteControl(0x2000, 0x00)
	if got := m.ReadROM(0x4000); got != 0 {
		t.Fatalf("selected bank = %d, want 0 (MBC5 has no 0->1 quirk)", got)
	}
}

func TestMBC5NineBitBankSelection(t *testing.T) {
	m := newMBC5Mapper(markedROM(512), 0)
	m.WriteControl(0x2000, 0xFF) // low 8 bits
	m.WriteControl(0x3000, 0x01) // bit 8
	if got := m.ReadROM(0x4000); got != 0xFF {
		t.Fatalf("selected bank low byte = %d, want 0xFF", got)
	}
	if m.bank() != 0x1FF {
		t.Fatalf("bank() = 0x%X, want 0x1FF", m.bank())
	}
}

func TestMBC5RAMRoundTrip(t *testing.T) {
	m := newMBC5Mapper(markedROM(2), 2*0x2000)
	m.WriteControl(0x0000, 0x0A)
	m.WriteControl(0x4000, 0x01)
	m.WriteRAM(0xA000, 0x77)
	if got := m.ReadRAM(0xA000); got != 0x77 {
		t.Fatalf("RAM round trip = 0x%02X, want 0x77", got)
	}
}

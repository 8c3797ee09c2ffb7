package cheats

import "testing"

type fakeMem struct {
	mem [0x10000]uint8
}

func (m *fakeMem) Read(addr uint16) uint8     { return m.mem[addr] }
func (m *fakeMem) Write(addr uint16, v uint8) { m.mem[addr] = v }

func TestDecodeGameSharkUnconditionalWrite(t *testing.T) {
	// bank=00, value=7F, address little-endian = 00C0 -> "00" "7F" "00" "C0"
	p, err := Decode("007F00C0")
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != 0x7F || p.Address != 0xC000 || p.HasCompare {
		t.Fatalf("got %+v", p)
	}
}

func TestDecodeGameGenieShortForm(t *testing.T) {
	// ABC-DEF: AB = new data 0x01, CDEF = "0003" reorganized to FCDE
	// "3000", XOR 0xF000 -> address 0xC000. No old-data digits.
	p, err := Decode("010-003")
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != 0x01 || p.Address != 0xC000 || p.HasCompare {
		t.Fatalf("got %+v", p)
	}
}

func TestDecodeGameGenieFullForm(t *testing.T) {
	// GI = 0xBA, so the old-data transform (GI ^ 0xBA) << 2 yields 0x00.
	p, err := Decode("010-003-BAA")
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != 0x01 || p.Address != 0xC000 {
		t.Fatalf("got %+v", p)
	}
	if !p.HasCompare || p.Compare != 0x00 {
		t.Fatalf("old data = 0x%02X (HasCompare=%v), want 0x00/true", p.Compare, p.HasCompare)
	}
}

func TestDecodeGameGenieAddressAndOldDataScramble(t *testing.T) {
	// "00A-17B-C49": FCDE = "B" + "A17" = 0xBA17, XOR 0xF000 -> 0x4A17;
	// GI = 0xC9, (0xC9 ^ 0xBA) << 2 = 0xCC.
	p, err := Decode("00A-17B-C49")
	if err != nil {
		t.Fatal(err)
	}
	if p.Value != 0x00 || p.Address != 0x4A17 {
		t.Fatalf("got %+v", p)
	}
	if p.Compare != 0xCC {
		t.Fatalf("old data = 0x%02X, want 0xCC", p.Compare)
	}
}

func TestDecodeGameGenieRejectsBadLength(t *testing.T) {
	if _, err := Decode("010-00"); err == nil {
		t.Fatal("expected an error for a truncated code")
	}
}

func TestPatchApplyRespectsCompareByte(t *testing.T) {
	m := &fakeMem{}
	m.Write(0xC000, 0x99)
	p := Patch{Address: 0xC000, Value: 0x01, Compare: 0x7F, HasCompare: true}
	p.Apply(m)
	if m.Read(0xC000) != 0x99 {
		t.Fatalf("patch applied despite compare mismatch")
	}

	m.Write(0xC000, 0x7F)
	p.Apply(m)
	if m.Read(0xC000) != 0x01 {
		t.Fatalf("patch did not apply on matching compare byte")
	}
}

func TestPatchApplyUnconditional(t *testing.T) {
	m := &fakeMem{}
	p := Patch{Address: 0xD000, Value: 0x42}
	p.Apply(m)
	if m.Read(0xD000) != 0x42 {
		t.Fatalf("unconditional patch did not apply")
	}
}

func TestListApplyRunsEveryPatch(t *testing.T) {
	m := &fakeMem{}
	list := &List{Patches: []Patch{
		{Address: 0xC000, Value: 0x01},
		{Address: 0xC001, Value: 0x02},
	}}
	list.Apply(m)
	if m.Read(0xC000) != 0x01 || m.Read(0xC001) != 0x02 {
		t.Fatalf("not all patches applied")
	}
}

package cheats

import "testing"

func TestLuaScriptReadsAndWritesMemory(t *testing.T) {
	m := &fakeMem{}
	m.Write(0xC000, 0x10)

	src := `
		function onFrame()
			local v = gb.read(0xC000)
			gb.write(0xC001, v + 1)
		end
	`
	s, err := LoadScript(src, m)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.OnFrame(); err != nil {
		t.Fatal(err)
	}
	if got := m.Read(0xC001); got != 0x11 {
		t.Fatalf("script wrote 0x%02X, want 0x11", got)
	}
}

func TestLuaScriptWithoutOnFrameIsANoop(t *testing.T) {
	s, err := LoadScript(`x = 1`, &fakeMem{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.OnFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestLuaScriptSyntaxErrorSurfaces(t *testing.T) {
	if _, err := LoadScript(`function (`, &fakeMem{}); err == nil {
		t.Fatal("expected a parse error")
	}
}

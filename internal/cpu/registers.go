package cpu

// Registers holds the SM83's 8-bit register file. F's low nibble is
// always kept zero, as on hardware.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
}

// BC, DE, HL, AF return the 16-bit register pairs, A/B/D/H high.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F&0xF0) }

func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }
func (r *Registers) SetAF(v uint16) { r.A, r.F = uint8(v>>8), uint8(v)&0xF0 }

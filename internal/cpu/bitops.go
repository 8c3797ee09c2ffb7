package cpu

// registerCBInstructions installs the full 256-entry CB-prefixed table:
// the rotate/shift/swap row ops, then BIT/RES/SET over all 8 registers
// and all 8 bit positions.
func registerCBInstructions() {
	type rowOp struct {
		base uint8
		name string
		fn   func(c *CPU, v uint8) uint8
	}
	rows := []rowOp{
		{0x00, "RLC", (*CPU).rlc},
		{0x08, "RRC", (*CPU).rrc},
		{0x10, "RL", (*CPU).rl},
		{0x18, "RR", (*CPU).rr},
		{0x20, "SLA", (*CPU).sla},
		{0x28, "SRA", (*CPU).sra},
		{0x30, "SWAP", (*CPU).swap},
		{0x38, "SRL", (*CPU).srl},
	}
	for _, row := range rows {
		row := row
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg
			cbInstructionSet[row.base+reg] = instruction{
				name: row.name + " " + reg8Names[reg],
				fn: func(c *CPU, bus Bus) {
					c.setReg8(bus, reg, row.fn(c, c.getReg8(bus, reg)))
				},
			}
		}
	}

	for bitN := uint8(0); bitN < 8; bitN++ {
		bitN := bitN
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg
			cbInstructionSet[0x40+bitN*8+reg] = instruction{
				name: "BIT n,r",
				fn:   func(c *CPU, bus Bus) { c.bit(bitN, c.getReg8(bus, reg)) },
			}
			cbInstructionSet[0x80+bitN*8+reg] = instruction{
				name: "RES n,r",
				fn:   func(c *CPU, bus Bus) { c.setReg8(bus, reg, res(bitN, c.getReg8(bus, reg))) },
			}
			cbInstructionSet[0xC0+bitN*8+reg] = instruction{
				name: "SET n,r",
				fn:   func(c *CPU, bus Bus) { c.setReg8(bus, reg, set(bitN, c.getReg8(bus, reg))) },
			}
		}
	}
}

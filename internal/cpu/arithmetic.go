package cpu

// registerArithmeticInstructions installs the 8-bit/16-bit ALU, INC/DEC,
// and flag-control opcodes into instructionSet.
func registerArithmeticInstructions() {
	type aluOp struct {
		base uint8
		name string
		fn   func(c *CPU, v uint8)
	}
	ops := []aluOp{
		{0x80, "ADD A,", func(c *CPU, v uint8) { c.A = c.add8(c.A, v, false) }},
		{0x88, "ADC A,", func(c *CPU, v uint8) { c.A = c.add8(c.A, v, true) }},
		{0x90, "SUB A,", func(c *CPU, v uint8) { c.A = c.sub8(c.A, v, false) }},
		{0x98, "SBC A,", func(c *CPU, v uint8) { c.A = c.sub8(c.A, v, true) }},
		{0xA0, "AND A,", func(c *CPU, v uint8) { c.A = c.and8(c.A, v) }},
		{0xA8, "XOR A,", func(c *CPU, v uint8) { c.A = c.xor8(c.A, v) }},
		{0xB0, "OR A,", func(c *CPU, v uint8) { c.A = c.or8(c.A, v) }},
		{0xB8, "CP A,", func(c *CPU, v uint8) { c.cp8(c.A, v) }},
	}
	for _, op := range ops {
		op := op
		for src := uint8(0); src < 8; src++ {
			src := src
			instructionSet[op.base+src] = instruction{
				name: op.name + reg8Names[src],
				fn:   func(c *CPU, bus Bus) { op.fn(c, c.getReg8(bus, src)) },
			}
		}
	}

	// Immediate forms: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,n8.
	immOps := []struct {
		opcode uint8
		name   string
		fn     func(c *CPU, v uint8)
	}{
		{0xC6, "ADD A,n8", func(c *CPU, v uint8) { c.A = c.add8(c.A, v, false) }},
		{0xCE, "ADC A,n8", func(c *CPU, v uint8) { c.A = c.add8(c.A, v, true) }},
		{0xD6, "SUB A,n8", func(c *CPU, v uint8) { c.A = c.sub8(c.A, v, false) }},
		{0xDE, "SBC A,n8", func(c *CPU, v uint8) { c.A = c.sub8(c.A, v, true) }},
		{0xE6, "AND A,n8", func(c *CPU, v uint8) { c.A = c.and8(c.A, v) }},
		{0xEE, "XOR A,n8", func(c *CPU, v uint8) { c.A = c.xor8(c.A, v) }},
		{0xF6, "OR A,n8", func(c *CPU, v uint8) { c.A = c.or8(c.A, v) }},
		{0xFE, "CP A,n8", func(c *CPU, v uint8) { c.cp8(c.A, v) }},
	}
	for _, op := range immOps {
		op := op
		instructionSet[op.opcode] = instruction{op.name, func(c *CPU, bus Bus) {
			op.fn(c, c.readOperand(bus))
		}}
	}

	// INC/DEC r8 — 0x04/0x05 step of 8 through 0x3C/0x3D.
	incDecTargets := []uint8{regB, regC, regD, regE, regH, regL, regHLInd, regA}
	for i, reg := range incDecTargets {
		reg := reg
		incOp := uint8(0x04 + i*8)
		decOp := uint8(0x05 + i*8)
		instructionSet[incOp] = instruction{"INC " + reg8Names[reg], func(c *CPU, bus Bus) {
			c.setReg8(bus, reg, c.inc8(c.getReg8(bus, reg)))
		}}
		instructionSet[decOp] = instruction{"DEC " + reg8Names[reg], func(c *CPU, bus Bus) {
			c.setReg8(bus, reg, c.dec8(c.getReg8(bus, reg)))
		}}
	}

	// INC/DEC rr16 and ADD HL,rr — 0x03/0x0B/0x09 pattern over BC/DE/HL/SP.
	pairs := []struct {
		incOp, decOp, addOp uint8
		get                 func(c *CPU) uint16
		set                 func(c *CPU, v uint16)
	}{
		{0x03, 0x0B, 0x09, (*CPU).BC, (*CPU).SetBC},
		{0x13, 0x1B, 0x19, (*CPU).DE, (*CPU).SetDE},
		{0x23, 0x2B, 0x29, (*CPU).HL, (*CPU).SetHL},
	}
	for _, p := range pairs {
		p := p
		instructionSet[p.incOp] = instruction{"INC rr", func(c *CPU, bus Bus) {
			c.tick(bus, 4)
			p.set(c, p.get(c)+1)
		}}
		instructionSet[p.decOp] = instruction{"DEC rr", func(c *CPU, bus Bus) {
			c.tick(bus, 4)
			p.set(c, p.get(c)-1)
		}}
		instructionSet[p.addOp] = instruction{"ADD HL,rr", func(c *CPU, bus Bus) {
			c.tick(bus, 4)
			c.add16HL(p.get(c))
		}}
	}
	instructionSet[0x33] = instruction{"INC SP", func(c *CPU, bus Bus) { c.tick(bus, 4); c.SP++ }}
	instructionSet[0x3B] = instruction{"DEC SP", func(c *CPU, bus Bus) { c.tick(bus, 4); c.SP-- }}
	instructionSet[0x39] = instruction{"ADD HL,SP", func(c *CPU, bus Bus) { c.tick(bus, 4); c.add16HL(c.SP) }}

	instructionSet[0xE8] = instruction{"ADD SP,e8", func(c *CPU, bus Bus) {
		c.tick(bus, 8)
		e := int8(c.readOperand(bus))
		c.SP = c.addSPSigned(c.SP, e)
	}}

	instructionSet[0x27] = instruction{"DAA", func(c *CPU, bus Bus) { c.daa() }}
	instructionSet[0x2F] = instruction{"CPL", func(c *CPU, bus Bus) {
		c.A = ^c.A
		c.setFlag(FlagSubtract, true)
		c.setFlag(FlagHalfCarry, true)
	}}
	instructionSet[0x37] = instruction{"SCF", func(c *CPU, bus Bus) {
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, true)
	}}
	instructionSet[0x3F] = instruction{"CCF", func(c *CPU, bus Bus) {
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, !c.isSet(FlagCarry))
	}}

	// Rotate-A forms (0x07/0x0F/0x17/0x1F) clear Z unlike their CB
	// counterparts.
	instructionSet[0x07] = instruction{"RLCA", func(c *CPU, bus Bus) {
		c.A = c.rlc(c.A)
		c.setFlag(FlagZero, false)
	}}
	instructionSet[0x0F] = instruction{"RRCA", func(c *CPU, bus Bus) {
		c.A = c.rrc(c.A)
		c.setFlag(FlagZero, false)
	}}
	instructionSet[0x17] = instruction{"RLA", func(c *CPU, bus Bus) {
		c.A = c.rl(c.A)
		c.setFlag(FlagZero, false)
	}}
	instructionSet[0x1F] = instruction{"RRA", func(c *CPU, bus Bus) {
		c.A = c.rr(c.A)
		c.setFlag(FlagZero, false)
	}}
}

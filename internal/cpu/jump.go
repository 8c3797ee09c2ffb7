package cpu

// registerJumpInstructions installs JR/JP/CALL/RET/RST and their
// conditional forms.
func registerJumpInstructions() {
	type cond struct {
		name string
		test func(c *CPU) bool
	}
	conds := []cond{
		{"NZ", func(c *CPU) bool { return !c.isSet(FlagZero) }},
		{"Z", func(c *CPU) bool { return c.isSet(FlagZero) }},
		{"NC", func(c *CPU) bool { return !c.isSet(FlagCarry) }},
		{"C", func(c *CPU) bool { return c.isSet(FlagCarry) }},
	}

	instructionSet[0x18] = instruction{"JR e8", func(c *CPU, bus Bus) {
		e := int8(c.readOperand(bus))
		c.tick(bus, 4)
		c.PC = uint16(int32(c.PC) + int32(e))
	}}
	jrOps := []uint8{0x20, 0x28, 0x30, 0x38}
	for i, op := range jrOps {
		cnd := conds[i]
		instructionSet[op] = instruction{"JR " + cnd.name + ",e8", func(c *CPU, bus Bus) {
			e := int8(c.readOperand(bus))
			if cnd.test(c) {
				c.tick(bus, 4)
				c.PC = uint16(int32(c.PC) + int32(e))
			}
		}}
	}

	instructionSet[0xC3] = instruction{"JP a16", func(c *CPU, bus Bus) {
		addr := c.readOperand16(bus)
		c.tick(bus, 4)
		c.PC = addr
	}}
	jpOps := []uint8{0xC2, 0xCA, 0xD2, 0xDA}
	for i, op := range jpOps {
		cnd := conds[i]
		instructionSet[op] = instruction{"JP " + cnd.name + ",a16", func(c *CPU, bus Bus) {
			addr := c.readOperand16(bus)
			if cnd.test(c) {
				c.tick(bus, 4)
				c.PC = addr
			}
		}}
	}
	instructionSet[0xE9] = instruction{"JP HL", func(c *CPU, bus Bus) { c.PC = c.HL() }}

	instructionSet[0xCD] = instruction{"CALL a16", func(c *CPU, bus Bus) {
		addr := c.readOperand16(bus)
		c.tick(bus, 4)
		c.SP--
		c.writeByte(bus, c.SP, uint8(c.PC>>8))
		c.SP--
		c.writeByte(bus, c.SP, uint8(c.PC))
		c.PC = addr
	}}
	callOps := []uint8{0xC4, 0xCC, 0xD4, 0xDC}
	for i, op := range callOps {
		cnd := conds[i]
		instructionSet[op] = instruction{"CALL " + cnd.name + ",a16", func(c *CPU, bus Bus) {
			addr := c.readOperand16(bus)
			if cnd.test(c) {
				c.tick(bus, 4)
				c.SP--
				c.writeByte(bus, c.SP, uint8(c.PC>>8))
				c.SP--
				c.writeByte(bus, c.SP, uint8(c.PC))
				c.PC = addr
			}
		}}
	}

	ret := func(c *CPU, bus Bus) {
		lo := c.readByte(bus, c.SP)
		c.SP++
		hi := c.readByte(bus, c.SP)
		c.SP++
		c.tick(bus, 4)
		c.PC = uint16(hi)<<8 | uint16(lo)
	}
	instructionSet[0xC9] = instruction{"RET", ret}
	instructionSet[0xD9] = instruction{"RETI", func(c *CPU, bus Bus) {
		ret(c, bus)
		c.IRQ.IME = true
		c.imePending = false
	}}
	retOps := []uint8{0xC0, 0xC8, 0xD0, 0xD8}
	for i, op := range retOps {
		cnd := conds[i]
		instructionSet[op] = instruction{"RET " + cnd.name, func(c *CPU, bus Bus) {
			c.tick(bus, 4)
			if cnd.test(c) {
				ret(c, bus)
			}
		}}
	}

	rstTargets := [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	rstOps := [8]uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF}
	for i, op := range rstOps {
		target := rstTargets[i]
		instructionSet[op] = instruction{"RST", func(c *CPU, bus Bus) {
			c.tick(bus, 4)
			c.SP--
			c.writeByte(bus, c.SP, uint8(c.PC>>8))
			c.SP--
			c.writeByte(bus, c.SP, uint8(c.PC))
			c.PC = target
		}}
	}
}

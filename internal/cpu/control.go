package cpu

// registerControlInstructions installs NOP, STOP, HALT, and the
// interrupt-master-enable opcodes. The 11 undefined primary opcodes are
// deliberately left with a nil fn, which execute() turns into an
// IllegalOpcodeError instead of silently behaving as NOP.
func registerControlInstructions() {
	instructionSet[0x00] = instruction{"NOP", func(c *CPU, bus Bus) {}}

	// STOP skips its padding byte without a memory access, staying at 4
	// cycles; the low-power/speed-switch behaviour it triggers is out of
	// scope here, so it is otherwise treated as a two-byte NOP.
	instructionSet[0x10] = instruction{"STOP", func(c *CPU, bus Bus) {
		c.PC++
	}}

	instructionSet[0x76] = instruction{"HALT", func(c *CPU, bus Bus) {
		c.enterHalt()
	}}

	instructionSet[0xF3] = instruction{"DI", func(c *CPU, bus Bus) {
		c.IRQ.IME = false
		c.imePending = false
	}}
	instructionSet[0xFB] = instruction{"EI", func(c *CPU, bus Bus) {
		c.enableIMEDelayed()
	}}
}

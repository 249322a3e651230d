package cpu

// opFunc executes one instruction body given its resolved effective address
// (meaningless for ModeIMP/ModeACC) and whether computing that address
// crossed a page boundary. It returns any extra cycles earned (page-cross
// penalty on loads, taken-branch and branch-page-cross penalties).
type opFunc func(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8

type entry struct {
	name    string
	op      opFunc
	mode    Mode
	cycles  uint8
	illegal bool
}

var opcodeTable [256]entry

func def(code uint8, name string, mode Mode, cycles uint8, op opFunc) {
	opcodeTable[code] = entry{name: name, op: op, mode: mode, cycles: cycles}
}

// defIllegalNOP records a documented-illegal opcode that behaves as a NOP
// of the given size/timing class. It still fetches its operand bytes so PC
// and cycle count match hardware, it just discards the result.
func defIllegalNOP(code uint8, mode Mode, cycles uint8) {
	opcodeTable[code] = entry{name: "*NOP", op: opNOP, mode: mode, cycles: cycles, illegal: true}
}

func init() {
	// Every opcode defaults to a 2-cycle, no-operand illegal NOP; this is
	// the fallback for the illegal opcodes not listed below (ANC, ALR,
	// ARR, XAA, AXS, LAX/SAX/DCP/ISC/SLO/RLA/SRE/RRA variants and the
	// JAM/KIL opcodes), all of which execute here as 1-byte, 2-cycle NOPs:
	// any operand bytes they have are not consumed, and their documented
	// side effects are not performed. Real hardware JAM opcodes hang the
	// bus; the tradeoff here is a CPU that keeps running instead, logged
	// as an illegal opcode each time it is hit.
	for i := range opcodeTable {
		opcodeTable[i] = entry{name: "*NOP", op: opNOP, mode: ModeIMP, cycles: 2, illegal: true}
	}

	// --- load/store ---
	def(0xA9, "LDA", ModeIMM, 2, opLDA)
	def(0xA5, "LDA", ModeZP0, 3, opLDA)
	def(0xB5, "LDA", ModeZPX, 4, opLDA)
	def(0xAD, "LDA", ModeABS, 4, opLDA)
	def(0xBD, "LDA", ModeABX, 4, opLDA)
	def(0xB9, "LDA", ModeABY, 4, opLDA)
	def(0xA1, "LDA", ModeIZX, 6, opLDA)
	def(0xB1, "LDA", ModeIZY, 5, opLDA)

	def(0xA2, "LDX", ModeIMM, 2, opLDX)
	def(0xA6, "LDX", ModeZP0, 3, opLDX)
	def(0xB6, "LDX", ModeZPY, 4, opLDX)
	def(0xAE, "LDX", ModeABS, 4, opLDX)
	def(0xBE, "LDX", ModeABY, 4, opLDX)

	def(0xA0, "LDY", ModeIMM, 2, opLDY)
	def(0xA4, "LDY", ModeZP0, 3, opLDY)
	def(0xB4, "LDY", ModeZPX, 4, opLDY)
	def(0xAC, "LDY", ModeABS, 4, opLDY)
	def(0xBC, "LDY", ModeABX, 4, opLDY)

	def(0x85, "STA", ModeZP0, 3, opSTA)
	def(0x95, "STA", ModeZPX, 4, opSTA)
	def(0x8D, "STA", ModeABS, 4, opSTA)
	def(0x9D, "STA", ModeABX, 5, opSTA)
	def(0x99, "STA", ModeABY, 5, opSTA)
	def(0x81, "STA", ModeIZX, 6, opSTA)
	def(0x91, "STA", ModeIZY, 6, opSTA)

	def(0x86, "STX", ModeZP0, 3, opSTX)
	def(0x96, "STX", ModeZPY, 4, opSTX)
	def(0x8E, "STX", ModeABS, 4, opSTX)

	def(0x84, "STY", ModeZP0, 3, opSTY)
	def(0x94, "STY", ModeZPX, 4, opSTY)
	def(0x8C, "STY", ModeABS, 4, opSTY)

	// --- transfers / stack ---
	def(0xAA, "TAX", ModeIMP, 2, opTAX)
	def(0xA8, "TAY", ModeIMP, 2, opTAY)
	def(0xBA, "TSX", ModeIMP, 2, opTSX)
	def(0x8A, "TXA", ModeIMP, 2, opTXA)
	def(0x9A, "TXS", ModeIMP, 2, opTXS)
	def(0x98, "TYA", ModeIMP, 2, opTYA)
	def(0x48, "PHA", ModeIMP, 3, opPHA)
	def(0x08, "PHP", ModeIMP, 3, opPHP)
	def(0x68, "PLA", ModeIMP, 4, opPLA)
	def(0x28, "PLP", ModeIMP, 4, opPLP)

	// --- arithmetic / logic ---
	def(0x69, "ADC", ModeIMM, 2, opADC)
	def(0x65, "ADC", ModeZP0, 3, opADC)
	def(0x75, "ADC", ModeZPX, 4, opADC)
	def(0x6D, "ADC", ModeABS, 4, opADC)
	def(0x7D, "ADC", ModeABX, 4, opADC)
	def(0x79, "ADC", ModeABY, 4, opADC)
	def(0x61, "ADC", ModeIZX, 6, opADC)
	def(0x71, "ADC", ModeIZY, 5, opADC)

	def(0xE9, "SBC", ModeIMM, 2, opSBC)
	def(0xE5, "SBC", ModeZP0, 3, opSBC)
	def(0xF5, "SBC", ModeZPX, 4, opSBC)
	def(0xED, "SBC", ModeABS, 4, opSBC)
	def(0xFD, "SBC", ModeABX, 4, opSBC)
	def(0xF9, "SBC", ModeABY, 4, opSBC)
	def(0xE1, "SBC", ModeIZX, 6, opSBC)
	def(0xF1, "SBC", ModeIZY, 5, opSBC)

	def(0x29, "AND", ModeIMM, 2, opAND)
	def(0x25, "AND", ModeZP0, 3, opAND)
	def(0x35, "AND", ModeZPX, 4, opAND)
	def(0x2D, "AND", ModeABS, 4, opAND)
	def(0x3D, "AND", ModeABX, 4, opAND)
	def(0x39, "AND", ModeABY, 4, opAND)
	def(0x21, "AND", ModeIZX, 6, opAND)
	def(0x31, "AND", ModeIZY, 5, opAND)

	def(0x49, "EOR", ModeIMM, 2, opEOR)
	def(0x45, "EOR", ModeZP0, 3, opEOR)
	def(0x55, "EOR", ModeZPX, 4, opEOR)
	def(0x4D, "EOR", ModeABS, 4, opEOR)
	def(0x5D, "EOR", ModeABX, 4, opEOR)
	def(0x59, "EOR", ModeABY, 4, opEOR)
	def(0x41, "EOR", ModeIZX, 6, opEOR)
	def(0x51, "EOR", ModeIZY, 5, opEOR)

	def(0x09, "ORA", ModeIMM, 2, opORA)
	def(0x05, "ORA", ModeZP0, 3, opORA)
	def(0x15, "ORA", ModeZPX, 4, opORA)
	def(0x0D, "ORA", ModeABS, 4, opORA)
	def(0x1D, "ORA", ModeABX, 4, opORA)
	def(0x19, "ORA", ModeABY, 4, opORA)
	def(0x01, "ORA", ModeIZX, 6, opORA)
	def(0x11, "ORA", ModeIZY, 5, opORA)

	def(0xC9, "CMP", ModeIMM, 2, opCMP)
	def(0xC5, "CMP", ModeZP0, 3, opCMP)
	def(0xD5, "CMP", ModeZPX, 4, opCMP)
	def(0xCD, "CMP", ModeABS, 4, opCMP)
	def(0xDD, "CMP", ModeABX, 4, opCMP)
	def(0xD9, "CMP", ModeABY, 4, opCMP)
	def(0xC1, "CMP", ModeIZX, 6, opCMP)
	def(0xD1, "CMP", ModeIZY, 5, opCMP)

	def(0xE0, "CPX", ModeIMM, 2, opCPX)
	def(0xE4, "CPX", ModeZP0, 3, opCPX)
	def(0xEC, "CPX", ModeABS, 4, opCPX)

	def(0xC0, "CPY", ModeIMM, 2, opCPY)
	def(0xC4, "CPY", ModeZP0, 3, opCPY)
	def(0xCC, "CPY", ModeABS, 4, opCPY)

	def(0x24, "BIT", ModeZP0, 3, opBIT)
	def(0x2C, "BIT", ModeABS, 4, opBIT)

	// --- increments / decrements ---
	def(0xE6, "INC", ModeZP0, 5, opINC)
	def(0xF6, "INC", ModeZPX, 6, opINC)
	def(0xEE, "INC", ModeABS, 6, opINC)
	def(0xFE, "INC", ModeABX, 7, opINC)
	def(0xC6, "DEC", ModeZP0, 5, opDEC)
	def(0xD6, "DEC", ModeZPX, 6, opDEC)
	def(0xCE, "DEC", ModeABS, 6, opDEC)
	def(0xDE, "DEC", ModeABX, 7, opDEC)
	def(0xE8, "INX", ModeIMP, 2, opINX)
	def(0xC8, "INY", ModeIMP, 2, opINY)
	def(0xCA, "DEX", ModeIMP, 2, opDEX)
	def(0x88, "DEY", ModeIMP, 2, opDEY)

	// --- shifts/rotates ---
	def(0x0A, "ASL", ModeACC, 2, opASL)
	def(0x06, "ASL", ModeZP0, 5, opASL)
	def(0x16, "ASL", ModeZPX, 6, opASL)
	def(0x0E, "ASL", ModeABS, 6, opASL)
	def(0x1E, "ASL", ModeABX, 7, opASL)

	def(0x4A, "LSR", ModeACC, 2, opLSR)
	def(0x46, "LSR", ModeZP0, 5, opLSR)
	def(0x56, "LSR", ModeZPX, 6, opLSR)
	def(0x4E, "LSR", ModeABS, 6, opLSR)
	def(0x5E, "LSR", ModeABX, 7, opLSR)

	def(0x2A, "ROL", ModeACC, 2, opROL)
	def(0x26, "ROL", ModeZP0, 5, opROL)
	def(0x36, "ROL", ModeZPX, 6, opROL)
	def(0x2E, "ROL", ModeABS, 6, opROL)
	def(0x3E, "ROL", ModeABX, 7, opROL)

	def(0x6A, "ROR", ModeACC, 2, opROR)
	def(0x66, "ROR", ModeZP0, 5, opROR)
	def(0x76, "ROR", ModeZPX, 6, opROR)
	def(0x6E, "ROR", ModeABS, 6, opROR)
	def(0x7E, "ROR", ModeABX, 7, opROR)

	// --- control flow ---
	def(0x4C, "JMP", ModeABS, 3, opJMP)
	def(0x6C, "JMP", ModeIND, 5, opJMP)
	def(0x20, "JSR", ModeABS, 6, opJSR)
	def(0x60, "RTS", ModeIMP, 6, opRTS)
	def(0x40, "RTI", ModeIMP, 6, opRTI)
	def(0x00, "BRK", ModeIMP, 7, opBRK)

	def(0x90, "BCC", ModeREL, 2, branchOp(flagC, false))
	def(0xB0, "BCS", ModeREL, 2, branchOp(flagC, true))
	def(0xF0, "BEQ", ModeREL, 2, branchOp(flagZ, true))
	def(0xD0, "BNE", ModeREL, 2, branchOp(flagZ, false))
	def(0x30, "BMI", ModeREL, 2, branchOp(flagN, true))
	def(0x10, "BPL", ModeREL, 2, branchOp(flagN, false))
	def(0x50, "BVC", ModeREL, 2, branchOp(flagV, false))
	def(0x70, "BVS", ModeREL, 2, branchOp(flagV, true))

	// --- flags ---
	def(0x18, "CLC", ModeIMP, 2, flagOp(flagC, false))
	def(0x38, "SEC", ModeIMP, 2, flagOp(flagC, true))
	def(0xD8, "CLD", ModeIMP, 2, flagOp(flagD, false))
	def(0xF8, "SED", ModeIMP, 2, flagOp(flagD, true))
	def(0x58, "CLI", ModeIMP, 2, flagOp(flagI, false))
	def(0x78, "SEI", ModeIMP, 2, flagOp(flagI, true))
	def(0xB8, "CLV", ModeIMP, 2, flagOp(flagV, false))

	def(0xEA, "NOP", ModeIMP, 2, opNOP)

	// --- documented-illegal opcodes collapsed to NOP of the correct
	// size/timing class ---
	for _, code := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		defIllegalNOP(code, ModeIMP, 2)
	}
	for _, code := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		defIllegalNOP(code, ModeIMM, 2)
	}
	for _, code := range []uint8{0x04, 0x44, 0x64} {
		defIllegalNOP(code, ModeZP0, 3)
	}
	for _, code := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		defIllegalNOP(code, ModeZPX, 4)
	}
	for _, code := range []uint8{0x0C} {
		defIllegalNOP(code, ModeABS, 4)
	}
	for _, code := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		defIllegalNOP(code, ModeABX, 4)
	}
}

func opNOP(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	if mode == ModeABX && pageCrossed {
		return 1
	}
	return 0
}

func withPageCrossBonus(pageCrossed bool) uint8 {
	if pageCrossed {
		return 1
	}
	return 0
}

func opLDA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A = c.read(addr)
	c.setZN(c.A)
	return withPageCrossBonus(pageCrossed)
}

func opLDX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.X = c.read(addr)
	c.setZN(c.X)
	return withPageCrossBonus(pageCrossed)
}

func opLDY(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.Y = c.read(addr)
	c.setZN(c.Y)
	return withPageCrossBonus(pageCrossed)
}

func opSTA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.write(addr, c.A)
	return 0
}

func opSTX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.write(addr, c.X)
	return 0
}

func opSTY(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.write(addr, c.Y)
	return 0
}

func opTAX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.X = c.A
	c.setZN(c.X)
	return 0
}

func opTAY(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.Y = c.A
	c.setZN(c.Y)
	return 0
}

func opTSX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.X = c.SP
	c.setZN(c.X)
	return 0
}

func opTXA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A = c.X
	c.setZN(c.A)
	return 0
}

func opTXS(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.SP = c.X
	return 0
}

func opTYA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A = c.Y
	c.setZN(c.A)
	return 0
}

func opPHA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.push(c.A)
	return 0
}

func opPHP(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	// PHP always pushes status with B and U set.
	c.push(c.flags | flagB | flagU)
	return 0
}

func opPLA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A = c.pull()
	c.setZN(c.A)
	return 0
}

func opPLP(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	// B is never actually stored in the flags register; U always reads 1.
	c.flags = (c.pull() &^ flagB) | flagU
	return 0
}

func opADC(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	m := c.read(addr)
	carry := uint16(0)
	if c.flag(flagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)
	c.setFlag(flagC, sum > 0xFF)
	c.setFlag(flagV, (c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return withPageCrossBonus(pageCrossed)
}

func opSBC(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	m := c.read(addr) ^ 0xFF
	carry := uint16(0)
	if c.flag(flagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := uint8(sum)
	c.setFlag(flagC, sum > 0xFF)
	c.setFlag(flagV, (c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return withPageCrossBonus(pageCrossed)
}

func opAND(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A &= c.read(addr)
	c.setZN(c.A)
	return withPageCrossBonus(pageCrossed)
}

func opEOR(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A ^= c.read(addr)
	c.setZN(c.A)
	return withPageCrossBonus(pageCrossed)
}

func opORA(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.A |= c.read(addr)
	c.setZN(c.A)
	return withPageCrossBonus(pageCrossed)
}

func compare(c *CPU, reg, m uint8) {
	result := reg - m
	c.setFlag(flagC, reg >= m)
	c.setZN(result)
}

func opCMP(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	compare(c, c.A, c.read(addr))
	return withPageCrossBonus(pageCrossed)
}

func opCPX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	compare(c, c.X, c.read(addr))
	return 0
}

func opCPY(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	compare(c, c.Y, c.read(addr))
	return 0
}

func opBIT(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	m := c.read(addr)
	c.setFlag(flagZ, c.A&m == 0)
	c.setFlag(flagV, m&0x40 != 0)
	c.setFlag(flagN, m&0x80 != 0)
	return 0
}

func opINC(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	v := c.read(addr) + 1
	c.write(addr, v)
	c.setZN(v)
	return 0
}

func opDEC(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	v := c.read(addr) - 1
	c.write(addr, v)
	c.setZN(v)
	return 0
}

func opINX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.X++
	c.setZN(c.X)
	return 0
}

func opINY(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.Y++
	c.setZN(c.Y)
	return 0
}

func opDEX(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.X--
	c.setZN(c.X)
	return 0
}

func opDEY(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.Y--
	c.setZN(c.Y)
	return 0
}

func opASL(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	if mode == ModeACC {
		c.setFlag(flagC, c.A&0x80 != 0)
		c.A <<= 1
		c.setZN(c.A)
		return 0
	}
	v := c.read(addr)
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.write(addr, v)
	c.setZN(v)
	return 0
}

func opLSR(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	if mode == ModeACC {
		c.setFlag(flagC, c.A&0x01 != 0)
		c.A >>= 1
		c.setZN(c.A)
		return 0
	}
	v := c.read(addr)
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.write(addr, v)
	c.setZN(v)
	return 0
}

func opROL(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	oldCarry := uint8(0)
	if c.flag(flagC) {
		oldCarry = 1
	}
	if mode == ModeACC {
		c.setFlag(flagC, c.A&0x80 != 0)
		c.A = (c.A << 1) | oldCarry
		c.setZN(c.A)
		return 0
	}
	v := c.read(addr)
	c.setFlag(flagC, v&0x80 != 0)
	v = (v << 1) | oldCarry
	c.write(addr, v)
	c.setZN(v)
	return 0
}

func opROR(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	oldCarry := uint8(0)
	if c.flag(flagC) {
		oldCarry = 0x80
	}
	if mode == ModeACC {
		c.setFlag(flagC, c.A&0x01 != 0)
		c.A = (c.A >> 1) | oldCarry
		c.setZN(c.A)
		return 0
	}
	v := c.read(addr)
	c.setFlag(flagC, v&0x01 != 0)
	v = (v >> 1) | oldCarry
	c.write(addr, v)
	c.setZN(v)
	return 0
}

func opJMP(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.PC = addr
	return 0
}

func opJSR(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.push16(c.PC - 1)
	c.PC = addr
	return 0
}

func opRTS(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.PC = c.pull16() + 1
	return 0
}

func opRTI(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.flags = (c.pull() &^ flagB) | flagU
	c.PC = c.pull16()
	return 0
}

func opBRK(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
	c.PC++ // BRK's operand byte is skipped (the "signature byte")
	c.interrupt(vectorIRQ, true)
	return 0
}

func flagOp(mask uint8, set bool) opFunc {
	return func(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
		c.setFlag(mask, set)
		return 0
	}
}

// branchOp builds BCC/BCS/BEQ/BNE/BMI/BPL/BVC/BVS: taken adds one cycle,
// and a taken branch that crosses a page adds a second.
func branchOp(mask uint8, takenWhenSet bool) opFunc {
	return func(c *CPU, addr uint16, mode Mode, pageCrossed bool) uint8 {
		if c.flag(mask) != takenWhenSet {
			return 0
		}
		oldPC := c.PC
		c.PC = addr
		extra := uint8(1)
		if (oldPC & 0xFF00) != (addr & 0xFF00) {
			extra++
		}
		return extra
	}
}

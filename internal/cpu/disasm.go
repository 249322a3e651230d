package cpu

import "fmt"

// Mnemonic returns the three-letter (plus illegal-opcode "*" prefix where
// applicable) mnemonic for opcode, per the decoded instruction table.
func Mnemonic(opcode uint8) string { return opcodeTable[opcode].name }

// Disassemble returns a one-line "$PC: MNEMONIC" string for the opcode
// byte at pc, without reading any operand bytes -- it never touches the
// bus, so it has no side effects even when pc addresses an I/O register.
func Disassemble(pc uint16, opcode uint8) string {
	return fmt.Sprintf("$%04X: %s", pc, Mnemonic(opcode))
}

// NextPC returns the CPU's current program counter, for callers (debug
// inspection) that want to disassemble the instruction about to execute.
func (c *CPU) NextPC() uint16 { return c.PC }

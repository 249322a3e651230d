package cpu

// State is a read-only snapshot of CPU registers, used by internal/debug
// and by tests; it never aliases live CPU state.
type State struct {
	A, X, Y, SP uint8
	PC          uint16
	Status      uint8
	C, Z, I, D, B, V, N bool
	CyclesLeft uint8
}

// Snapshot returns the CPU's current register file without side effects.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC,
		Status:     c.flags | flagU,
		C:          c.flag(flagC),
		Z:          c.flag(flagZ),
		I:          c.flag(flagI),
		D:          c.flag(flagD),
		B:          c.flag(flagB),
		V:          c.flag(flagV),
		N:          c.flag(flagN),
		CyclesLeft: c.cyclesLeft,
	}
}

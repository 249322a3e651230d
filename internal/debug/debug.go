// Package debug provides read-only inspection views over a running
// console: CPU registers, PPU scanline/dot/scroll state, and a
// disassembly string for the instruction about to execute.
package debug

import (
	"fmt"

	"github.com/rng999/nesgo/internal/cpu"
	"github.com/rng999/nesgo/internal/ppu"
)

// Console is the subset of *nes.Nes that debug views need. It's defined
// here rather than imported to avoid a dependency from internal/debug
// back up to the root package.
type Console interface {
	CPUState() cpu.State
	PPUState() ppu.State
	NextOpcode() uint8
	NextPC() uint16
}

// Snapshot is a point-in-time read-only view of both subsystems.
type Snapshot struct {
	CPU  cpu.State
	PPU  ppu.State
	Next string // disassembly of the instruction about to execute
}

// Take captures a Snapshot of c. Take itself mutates nothing; the opcode
// comes from c.NextOpcode, which for *nes.Nes is a CPU bus read and so has
// that read's side effects when PC addresses an I/O register.
func Take(c Console) Snapshot {
	return Snapshot{
		CPU:  c.CPUState(),
		PPU:  c.PPUState(),
		Next: cpu.Disassemble(c.NextPC(), c.NextOpcode()),
	}
}

// String renders a compact one-line register dump, in the same spirit as
// the trace lines emitted by reference 6502 test harnesses (PC, A, X, Y,
// P, SP, then the PPU's scanline/dot).
func (s Snapshot) String() string {
	p := s.CPU.Status
	return fmt.Sprintf("%s  A:%02X X:%02X Y:%02X P:%02X SP:%02X  PPU:%3d,%3d",
		s.Next, s.CPU.A, s.CPU.X, s.CPU.Y, p, s.CPU.SP, s.PPU.Scanline, s.PPU.Dot)
}

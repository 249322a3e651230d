package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rng999/nesgo/internal/cpu"
	"github.com/rng999/nesgo/internal/ppu"
)

type fakeConsole struct {
	cpuState cpu.State
	ppuState ppu.State
	pc       uint16
	opcode   uint8
}

func (f fakeConsole) CPUState() cpu.State { return f.cpuState }
func (f fakeConsole) PPUState() ppu.State { return f.ppuState }
func (f fakeConsole) NextPC() uint16      { return f.pc }
func (f fakeConsole) NextOpcode() uint8   { return f.opcode }

func TestTake_CapturesDisassemblyAndRegisters(t *testing.T) {
	c := fakeConsole{
		cpuState: cpu.State{A: 0x42, X: 0x01, Y: 0x02, SP: 0xFD, PC: 0x8000, Status: 0x24},
		ppuState: ppu.State{Scanline: 100, Dot: 50},
		pc:       0x8000,
		opcode:   0xEA, // NOP
	}

	snap := Take(c)
	assert.Contains(t, snap.Next, "NOP")
	assert.Contains(t, snap.Next, "$8000")
	assert.Contains(t, snap.String(), "A:42")
	assert.Contains(t, snap.String(), "PPU:100, 50")
}

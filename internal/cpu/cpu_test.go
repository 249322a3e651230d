package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rng999/nesgo/internal/warn"
)

func TestReset_PowerOnState(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0xC000)
	c := New(bus, nil)

	assert.Equal(t, uint16(0xC000), c.PC)
	assert.Equal(t, uint8(0xFD), c.SP)
	assert.True(t, c.flag(flagI))

	settle(c)
	assert.Equal(t, uint16(0xC000), c.PC, "reset must not advance PC past the vector")
}

func TestADC_OverflowAndCarryFlags(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	// LDA #$7F ; ADC #$01 -> 0x80, signed overflow (pos+pos=neg), no carry
	bus.load(0x8000, 0xA9, 0x7F, 0x69, 0x01)
	c := New(bus, nil)
	settle(c)

	run(c, 1)
	assert.Equal(t, uint8(0x7F), c.A)

	run(c, 1)
	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.flag(flagV), "0x7F+0x01 must set overflow")
	assert.False(t, c.flag(flagC), "0x7F+0x01 must not set carry")
	assert.True(t, c.flag(flagN))
}

func TestADC_CarryOutNoOverflow(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	// LDA #$FF ; ADC #$01 -> 0x00 with carry out, no signed overflow
	bus.load(0x8000, 0xA9, 0xFF, 0x69, 0x01)
	c := New(bus, nil)
	settle(c)
	run(c, 2)

	assert.Equal(t, uint8(0x00), c.A)
	assert.True(t, c.flag(flagC))
	assert.True(t, c.flag(flagZ))
	assert.False(t, c.flag(flagV))
}

func TestSBC_BorrowViaCarryFlag(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	// SEC ; LDA #$00 ; SBC #$01 -> 0xFF, carry clear (borrow occurred)
	bus.load(0x8000, 0x38, 0xA9, 0x00, 0xE9, 0x01)
	c := New(bus, nil)
	settle(c)
	run(c, 3)

	assert.Equal(t, uint8(0xFF), c.A)
	assert.False(t, c.flag(flagC))
	assert.True(t, c.flag(flagN))
}

func TestJMP_IndirectPageWrapBug(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	// Pointer at $30FF: low byte at $30FF, high byte incorrectly fetched
	// from $3000 instead of $3100.
	bus.mem[0x30FF] = 0x00
	bus.mem[0x3000] = 0x40
	bus.mem[0x3100] = 0x80 // would be the "correct" high byte on a fixed CPU
	bus.load(0x8000, 0x6C, 0xFF, 0x30)
	c := New(bus, nil)
	settle(c)
	run(c, 1)

	assert.Equal(t, uint16(0x4000), c.PC, "JMP ($30FF) must reproduce the page-wrap fetch bug")
}

func TestBranch_TakenAddsCycleAndPageCrossAddsAnother(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x80F0)
	// At $80F0: CLC ; BCC +$10 (branch not taken path irrelevant); target
	// crosses from page $80 to $81.
	bus.load(0x80F0, 0x18, 0x90, 0x10)
	c := New(bus, nil)
	settle(c)

	run(c, 1) // CLC, 2 cycles
	startCycles := 0
	for !c.Clock() {
		startCycles++
	}
	// BCC taken (C clear) + page cross: base 2 + 1 (taken) + 1 (cross) = 4
	// Clock() was already called once to detect completion; account for it.
	assert.Equal(t, 3, startCycles, "branch taken across a page boundary costs 4 cycles total")
	assert.Equal(t, uint16(0x8103), c.PC, "0x80F1 + 2 (PC after operand) + 0x10")
}

func TestStackOps_PushPullRoundTrip(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	// LDA #$42 ; PHA ; LDA #$00 ; PLA
	bus.load(0x8000, 0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68)
	c := New(bus, nil)
	settle(c)
	run(c, 4)

	assert.Equal(t, uint8(0x42), c.A)
	assert.Equal(t, uint8(0xFD), c.SP, "stack pointer must return to its pre-push depth")
}

func TestPHP_SetsBreakAndUnusedBits(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	bus.load(0x8000, 0x08) // PHP
	c := New(bus, nil)
	settle(c)
	run(c, 1)

	pushed := bus.mem[0x0100+int(c.SP)+1]
	assert.NotZero(t, pushed&flagB)
	assert.NotZero(t, pushed&flagU)
}

func TestRaiseNMI_ServicedAtNextInstructionBoundary(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90 // NMI vector -> $9000
	bus.load(0x8000, 0xEA) // NOP
	c := New(bus, nil)
	settle(c)

	c.RaiseNMI()
	run(c, 1) // services the NMI instead of the NOP at $8000

	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.flag(flagI), "NMI service must set the interrupt-disable flag")
}

func TestCompare_SetsCarryOnGreaterOrEqual(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	// LDA #$10 ; CMP #$05
	bus.load(0x8000, 0xA9, 0x10, 0xC9, 0x05)
	c := New(bus, nil)
	settle(c)
	run(c, 2)

	assert.True(t, c.flag(flagC))
	assert.False(t, c.flag(flagZ))
}

func TestIllegalOpcode_LogsAndBehavesAsNOP(t *testing.T) {
	bus := &flatBus{}
	bus.setResetVector(0x8000)
	bus.load(0x8000, 0x1A, 0xEA) // documented-illegal 1-byte NOP, then real NOP

	var warnings []warn.Warning
	c := New(bus, func(w warn.Warning) { warnings = append(warnings, w) })
	settle(c)

	run(c, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, warn.IllegalOpcode, warnings[0].Kind)
	assert.Equal(t, uint8(0x1A), warnings[0].Op)

	run(c, 1) // the following real NOP must not warn
	assert.Len(t, warnings, 1)
}

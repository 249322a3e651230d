// Package cpu implements the 2A03's 6502-derived integer core: 13
// addressing modes, the 56 official opcodes plus the stable illegal
// opcodes collapsed to their documented NOP behavior, and the
// RESET/NMI/IRQ/BRK interrupt sequences. Decimal mode does not exist on
// this chip and is not implemented.
package cpu

import "github.com/rng999/nesgo/internal/warn"

const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5 // unused, always read back as 1
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
	stackBase   uint16 = 0x0100
)

// Bus is the CPU's view of the address space, satisfied by cpubus.Bus.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// CPU is a 2A03 integer core driven one clock at a time by Clock. It holds
// no reference to the PPU: NMI delivery is a one-bit latch set by the
// scheduler (RaiseNMI) and polled at the next instruction boundary, which
// keeps the CPU and PPU packages free of a back-reference to each other.
type CPU struct {
	A, X, Y, SP uint8
	PC          uint16
	flags       uint8

	bus  Bus
	warn warn.Func

	cyclesLeft uint8
	opcode     uint8

	nmiPending bool
	irqLine    bool // level-triggered; cleared by the source, not by service

	halted bool // never set: JAM/KIL opcodes execute as NOPs here (see opcodes.go)
}

// New builds a CPU over bus. warnFn receives non-fatal runtime warnings
// (illegal opcodes); if nil, warn.Default is used.
func New(bus Bus, warnFn warn.Func) *CPU {
	if warnFn == nil {
		warnFn = warn.Default
	}
	c := &CPU{bus: bus, warn: warnFn}
	c.Reset()
	return c
}

// Reset puts the CPU in its power-up/reset state: A, X and Y cleared, SP set
// to $FD (not decremented, so repeated resets land in the same state), I
// set, PC loaded from the reset vector, and 7 cycles of reset sequence left
// to run before the first opcode fetch. A fresh CPU from New is already in this state; Reset exists
// so callers can pulse the line again (e.g. a debug "restart" command).
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.flags = flagU | flagI
	c.nmiPending = false
	c.irqLine = false
	c.halted = false
	c.cyclesLeft = 7
	c.PC = c.read16(vectorReset)
}

// RaiseNMI latches a pending non-maskable interrupt. The PPU calls this
// once per vertical blank (scanline 241, dot 1); the CPU services it at the
// next instruction boundary without needing a PPU reference inside the
// CPU.
func (c *CPU) RaiseNMI() { c.nmiPending = true }

// SetIRQLine sets or clears the level-triggered IRQ line. No in-scope
// source currently drives this (APU and mapper IRQs are out of scope); it
// exists so the interrupt-priority logic has somewhere to plug in.
func (c *CPU) SetIRQLine(asserted bool) { c.irqLine = asserted }

// Halted reports whether the core has stopped. No opcode stops it (JAM/KIL
// opcodes execute as NOPs), so this is always false.
func (c *CPU) Halted() bool { return c.halted }

// Clock advances the CPU by one CPU cycle (called once per three master
// clocks by the scheduler). It returns true on the cycle that completes an
// instruction (or interrupt sequence), i.e. the cycle after which the next
// Clock call will begin fetching a new opcode.
func (c *CPU) Clock() bool {
	if c.halted {
		return true
	}
	if c.cyclesLeft == 0 {
		c.beginInstruction()
	} else {
		c.cyclesLeft--
	}
	if c.cyclesLeft == 0 {
		return true
	}
	return false
}

// beginInstruction services a pending interrupt if one is latched, else
// fetches, decodes and executes the next opcode, leaving cyclesLeft holding
// the remaining cycles after this one.
func (c *CPU) beginInstruction() {
	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(vectorNMI, false)
		c.cyclesLeft = 7 - 1
		return
	}
	if c.irqLine && c.flags&flagI == 0 {
		c.interrupt(vectorIRQ, false)
		c.cyclesLeft = 7 - 1
		return
	}

	c.opcode = c.read(c.PC)
	opPC := c.PC
	c.PC++
	entry := opcodeTable[c.opcode]
	if entry.illegal {
		c.warn(warn.Warning{Kind: warn.IllegalOpcode, PC: opPC, Op: c.opcode})
	}

	addr, pageCrossed := c.resolve(entry.mode)
	extra := entry.op(c, addr, entry.mode, pageCrossed)

	total := entry.cycles + extra
	if total == 0 {
		total = 2
	}
	c.cyclesLeft = total - 1
}

// interrupt pushes PC and status and loads PC from vector. brk marks
// whether the B flag is set in the pushed status byte (true for BRK,
// false for hardware-driven NMI/IRQ; PHP pushes status on its own).
func (c *CPU) interrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	status := c.flags | flagU
	if brk {
		status |= flagB
	} else {
		status &^= flagB
	}
	c.push(status)
	c.flags |= flagI
	c.PC = c.read16(vector)
}

func (c *CPU) read(addr uint16) uint8     { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8) { c.bus.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return (hi << 8) | lo
}

func (c *CPU) push(v uint8) {
	c.write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull() uint8 {
	c.SP++
	return c.read(stackBase + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return (hi << 8) | lo
}

func (c *CPU) setFlag(mask uint8, set bool) {
	if set {
		c.flags |= mask
	} else {
		c.flags &^= mask
	}
}

func (c *CPU) flag(mask uint8) bool { return c.flags&mask != 0 }

func (c *CPU) setZN(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

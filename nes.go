// Package nes wires the cartridge, buses, CPU and PPU into a single
// scheduler-driven console. It is the only package a host needs to import
// to load a ROM and advance emulation.
package nes

import (
	"bytes"

	"github.com/rng999/nesgo/internal/cartridge"
	"github.com/rng999/nesgo/internal/cpu"
	"github.com/rng999/nesgo/internal/cpubus"
	"github.com/rng999/nesgo/internal/ppu"
	"github.com/rng999/nesgo/internal/ppubus"
	"github.com/rng999/nesgo/internal/warn"
)

// Frame is one composited 256x240 RGB frame, one packed 0xRRGGBB pixel per
// slot, row-major. It is a type alias so callers never need to import
// internal/ppu directly.
type Frame = ppu.Frame

// FrameFunc is invoked once per completed frame. See ppu.FrameFunc.
type FrameFunc = ppu.FrameFunc

// WarnFunc receives non-fatal runtime warnings. See warn.Func.
type WarnFunc = warn.Func

// Nes is the fully wired console: cartridge, CPU bus, PPU bus, CPU and PPU,
// advanced one master clock at a time by Tick.
type Nes struct {
	cart *cartridge.Cartridge

	cpuBus *cpubus.Bus
	ppuBus *ppubus.Bus

	CPU *cpu.CPU
	PPU *ppu.PPU

	masterClock uint64
}

// Load reads an iNES/NES2.0 ROM from path and returns a ready-to-run
// console. frameSink, if non-nil, is called once per completed frame;
// warnFn, if non-nil, receives non-fatal runtime warnings from either
// subsystem (otherwise warn.Default logs them).
func Load(path string, frameSink FrameFunc, warnFn WarnFunc) (*Nes, error) {
	cart, err := cartridge.Load(path)
	if err != nil {
		return nil, err
	}
	return newNes(cart, frameSink, warnFn), nil
}

// LoadBytes is Load for an in-memory ROM image (tests, embedded ROMs).
func LoadBytes(rom []byte, frameSink FrameFunc, warnFn WarnFunc) (*Nes, error) {
	cart, err := cartridge.LoadReader(bytes.NewReader(rom))
	if err != nil {
		return nil, err
	}
	return newNes(cart, frameSink, warnFn), nil
}

func newNes(cart *cartridge.Cartridge, frameSink FrameFunc, warnFn WarnFunc) *Nes {
	n := &Nes{cart: cart}

	n.ppuBus = ppubus.New(cart, warnFn)
	n.PPU = ppu.New(n.ppuBus, n.raiseNMI, frameSink, warnFn)
	n.cpuBus = cpubus.New(n.PPU, cart, warnFn)
	n.CPU = cpu.New(n.cpuBus, warnFn)

	return n
}

func (n *Nes) raiseNMI() { n.CPU.RaiseNMI() }

// Reset re-applies power-on/reset state to both subsystems. It is
// deterministic and idempotent: calling it twice in a row is equivalent to
// calling it once.
func (n *Nes) Reset() {
	n.CPU.Reset()
	n.PPU.Reset()
	n.masterClock = 0
}

// Tick advances the console by exactly one master clock: the PPU is
// clocked every tick, the CPU every third tick, matching the real NES's
// 1:3 CPU-to-PPU clock ratio. The PPU is clocked first so it observes its
// own writes before the CPU does within the same tick.
func (n *Nes) Tick() {
	n.masterClock++
	n.PPU.Clock()
	if n.masterClock%3 == 0 {
		n.CPU.Clock()
	}
}

// StepInstruction ticks until the CPU reports an instruction boundary.
func (n *Nes) StepInstruction() {
	for {
		n.masterClock++
		n.PPU.Clock()
		if n.masterClock%3 == 0 && n.CPU.Clock() {
			return
		}
	}
}

// RunFrame ticks until the PPU transitions into (scanline=241, dot=0) --
// the start of the vertical blank period -- and returns the frame buffer
// assembled up to that point. The returned pointer is stable across the
// Nes's lifetime; callers that need to retain pixels past the next frame
// must copy them out.
func (n *Nes) RunFrame() *Frame {
	for {
		n.Tick()
		snap := n.PPU.Snapshot()
		if snap.Scanline == 241 && snap.Dot == 0 {
			return n.PPU.FrameBuffer()
		}
	}
}

// ReadCPU reads a CPU bus address for debug inspection. It is not fully
// side-effect-free: PPU/APU register windows can have read side effects on
// real hardware (e.g. $2007's buffered read, $2002's VBlank-clear), which
// this passes through faithfully rather than special-casing for
// debuggers, to keep the inspected value honest.
func (n *Nes) ReadCPU(addr uint16) uint8 { return n.cpuBus.Read(addr) }

// ReadPPU reads a PPU bus address for debug inspection, subject to the
// same side-effect caveat as ReadCPU.
func (n *Nes) ReadPPU(addr uint16) uint8 { return n.ppuBus.Read(addr) }

// Cartridge exposes the loaded cartridge's header for debug inspection.
func (n *Nes) Cartridge() *cartridge.Cartridge { return n.cart }

// CPUState returns a read-only CPU register snapshot (internal/debug's
// Console interface).
func (n *Nes) CPUState() cpu.State { return n.CPU.Snapshot() }

// PPUState returns a read-only PPU rendering-state snapshot
// (internal/debug's Console interface).
func (n *Nes) PPUState() ppu.State { return n.PPU.Snapshot() }

// NextPC returns the address of the instruction about to execute
// (internal/debug's Console interface).
func (n *Nes) NextPC() uint16 { return n.CPU.NextPC() }

// NextOpcode reads the opcode byte about to execute. Like ReadCPU, this is
// not side-effect-free if PC happens to address an I/O register.
func (n *Nes) NextOpcode() uint8 { return n.cpuBus.Read(n.CPU.NextPC()) }

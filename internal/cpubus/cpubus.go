// Package cpubus implements the CPU's fixed address-space map: internal
// RAM, the PPU register window, APU/IO stubs, and the cartridge.
package cpubus

import "github.com/rng999/nesgo/internal/warn"

// PPURegisters is the CPU-visible register file exposed by the PPU at
// $2000-$2007 (mirrored every 8 bytes).
type PPURegisters interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// Cartridge is the mapper-backed $4020-$FFFF window.
type Cartridge interface {
	CPURead(addr uint16) (value uint8, ok bool)
	CPUWrite(addr uint16, value uint8) (ok bool)
}

// Bus is the CPU's view of the address space.
type Bus struct {
	ram  [0x0800]uint8
	ppu  PPURegisters
	cart Cartridge
	warn warn.Func
}

// New builds a CPU bus over ppu and cart. warnFn receives non-fatal runtime
// warnings (unhandled accesses); if nil, warn.Default is used.
func New(ppu PPURegisters, cart Cartridge, warnFn warn.Func) *Bus {
	if warnFn == nil {
		warnFn = warn.Default
	}
	return &Bus{ppu: ppu, cart: cart, warn: warnFn}
}

// Read decodes a CPU read against the address map above.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.ppu.ReadRegister(0x2000 + (addr & 7))
	case addr == 0x4015:
		return 0 // APU status, stubbed
	case addr < 0x4018:
		return 0 // APU registers / OAMDMA / controllers, stubbed
	case addr < 0x4020:
		return 0 // disabled CPU test region
	default:
		v, ok := b.cart.CPURead(addr)
		if !ok {
			b.warn(warn.Warning{Kind: warn.UnhandledBusAccess, Addr: addr})
			return 0
		}
		return v
	}
}

// Write decodes a CPU write against the address map above.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = value
	case addr < 0x4000:
		b.ppu.WriteRegister(0x2000+(addr&7), value)
	case addr == 0x4014:
		// OAMDMA: sprite pipeline is out of scope; the write is acknowledged
		// but does not move any bytes.
	case addr < 0x4018:
		// APU registers / controllers, stubbed: writes ignored.
	case addr < 0x4020:
		// disabled CPU test region, stubbed.
	default:
		if !b.cart.CPUWrite(addr, value) {
			b.warn(warn.Warning{Kind: warn.UnhandledBusAccess, Addr: addr})
		}
	}
}

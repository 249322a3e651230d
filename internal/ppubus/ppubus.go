// Package ppubus implements the PPU's fixed address-space map: pattern
// tables routed to the mapper, nametables routed through the mapper's
// mirroring policy into core-owned VRAM, and 32-byte palette RAM with its
// documented mirrors.
package ppubus

import "github.com/rng999/nesgo/internal/warn"

// Mapper is the subset of cartridge.Mapper the PPU bus needs.
type Mapper interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, value uint8)
	NametableMirror(addr uint16) (page int, offset uint16)
}

// Bus is the PPU's view of its 14-bit address space plus palette RAM.
type Bus struct {
	mapper  Mapper
	vram    [2][1024]uint8
	palette [32]uint8
	warn    warn.Func
}

// New builds a PPU bus over mapper. warnFn is stored for non-fatal runtime
// warnings (warn.Default if nil); Read and Write emit none, since every
// masked address decodes to a handled range.
func New(mapper Mapper, warnFn warn.Func) *Bus {
	if warnFn == nil {
		warnFn = warn.Default
	}
	return &Bus{mapper: mapper, warn: warnFn}
}

// Read decodes a PPU read, masking addr to $0000-$3FFF as the PPU always
// does before presenting it to the bus.
func (b *Bus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return b.mapper.PPURead(addr)
	case addr < 0x3F00:
		page, offset := b.mapper.NametableMirror(aliasNametable(addr))
		return b.vram[page][offset]
	default:
		return b.palette[paletteIndex(addr)]
	}
}

// Write decodes a PPU write.
func (b *Bus) Write(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		b.mapper.PPUWrite(addr, value)
	case addr < 0x3F00:
		page, offset := b.mapper.NametableMirror(aliasNametable(addr))
		b.vram[page][offset] = value
	default:
		b.palette[paletteIndex(addr)] = value
	}
}

// aliasNametable folds $3000-$3EFF onto $2000-$2EFF before mirroring.
func aliasNametable(addr uint16) uint16 {
	if addr >= 0x3000 {
		return addr - 0x1000
	}
	return addr
}

// paletteIndex resolves a palette address (already known to be >= $3F00) to
// its canonical slot in the 32-byte table, folding the $10/$14/$18/$1C
// aliases onto $00/$04/$08/$0C so a write through either address is
// observable through the other.
func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		idx -= 0x10
	}
	return idx
}

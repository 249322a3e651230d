package cartridge

// nrom implements mapper 0 (NROM): no bank switching, 16KiB or 32KiB PRG-ROM,
// 8KiB CHR-ROM or CHR-RAM, and an 8KiB PRG-RAM window at $6000-$7FFF.
type nrom struct {
	prgROM   []uint8
	chrROM   []uint8 // CHR-ROM or CHR-RAM per chrIsRAM
	prgRAM   [0x2000]uint8
	chrIsRAM bool
	mirror   Mirror
	prg16K   bool // true if PRG-ROM is a single 16KiB bank, mirrored to fill $8000-$FFFF
}

func newNROM(prgROM, chrROM []uint8, chrIsRAM bool, mirror Mirror) *nrom {
	return &nrom{
		prgROM:   prgROM,
		chrROM:   chrROM,
		chrIsRAM: chrIsRAM,
		mirror:   mirror,
		prg16K:   len(prgROM) <= 16384,
	}
}

func (m *nrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x8000:
		offset := addr - 0x8000
		if m.prg16K {
			offset &= 0x3FFF
		}
		if int(offset) >= len(m.prgROM) {
			return 0, true
		}
		return m.prgROM[offset], true
	case addr >= 0x6000:
		return m.prgRAM[addr-0x6000], true
	default:
		return 0, false
	}
}

func (m *nrom) CPUWrite(addr uint16, value uint8) bool {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = value
		return true
	}
	// Writes into $8000-$FFFF are no-ops on NROM (no bank registers).
	return addr >= 0x8000
}

func (m *nrom) PPURead(addr uint16) uint8 {
	addr &= 0x1FFF
	if int(addr) < len(m.chrROM) {
		return m.chrROM[addr]
	}
	return 0
}

func (m *nrom) PPUWrite(addr uint16, value uint8) {
	if !m.chrIsRAM {
		return
	}
	addr &= 0x1FFF
	if int(addr) < len(m.chrROM) {
		m.chrROM[addr] = value
	}
}

func (m *nrom) NametableMirror(addr uint16) (int, uint16) {
	offset := addr & 0x03FF
	switch m.mirror {
	case MirrorVertical:
		return int((addr >> 10) & 1), offset
	case MirrorSingleScreen0:
		return 0, offset
	case MirrorSingleScreen1:
		return 1, offset
	case MirrorFourScreen:
		// NROM has no four-screen VRAM of its own; fall back to the low
		// two pages rather than fabricating mapper-owned storage.
		return int((addr >> 11) & 1), offset
	default: // MirrorHorizontal
		return int((addr >> 11) & 1), offset
	}
}

package cartridge

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

const trainerSize = 512

// Cartridge owns the parsed header and the mapper instantiated from it. It
// is the CPU/PPU buses' only route into PRG/CHR storage.
type Cartridge struct {
	Header Header
	mapper Mapper
}

// Load reads and parses an iNES/NES2.0 ROM image from path.
func Load(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIo, err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses an iNES/NES2.0 ROM image from an arbitrary reader, so
// tests can build cartridges in memory without touching the filesystem.
func LoadReader(r io.Reader) (*Cartridge, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrShortRead, err)
	}

	header, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	if header.HasTrainer {
		trainer := make([]uint8, trainerSize)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("%w: trainer: %v", ErrShortRead, err)
		}
	}

	if header.PRGROMSize == 0 {
		return nil, fmt.Errorf("%w: zero PRG-ROM size", ErrShortRead)
	}

	prgROM := make([]uint8, header.PRGROMSize)
	if _, err := io.ReadFull(r, prgROM); err != nil {
		return nil, fmt.Errorf("%w: PRG-ROM: %v", ErrShortRead, err)
	}

	var chrROM []uint8
	chrIsRAM := header.CHRROMSize == 0
	if chrIsRAM {
		size := header.CHRRAMSize
		if size == 0 {
			size = 8192
		}
		chrROM = make([]uint8, size)
	} else {
		chrROM = make([]uint8, header.CHRROMSize)
		if _, err := io.ReadFull(r, chrROM); err != nil {
			return nil, fmt.Errorf("%w: CHR-ROM: %v", ErrShortRead, err)
		}
	}

	mapper, err := newMapper(header.MapperID, prgROM, chrROM, chrIsRAM, header.Mirror)
	if err != nil {
		return nil, fmt.Errorf("%w: mapper %d", err, header.MapperID)
	}

	glog.Infof("cartridge: loaded mapper %d, %dKiB PRG, %dKiB CHR (%s), mirror=%v",
		header.MapperID, len(prgROM)/1024, len(chrROM)/1024, chrKind(chrIsRAM), header.Mirror)

	return &Cartridge{Header: header, mapper: mapper}, nil
}

func chrKind(isRAM bool) string {
	if isRAM {
		return "RAM"
	}
	return "ROM"
}

// CPURead delegates a CPU bus read in $4020-$FFFF to the mapper.
func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	return c.mapper.CPURead(addr)
}

// CPUWrite delegates a CPU bus write in $4020-$FFFF to the mapper.
func (c *Cartridge) CPUWrite(addr uint16, value uint8) bool {
	return c.mapper.CPUWrite(addr, value)
}

// PPURead delegates a pattern-table read ($0000-$1FFF) to the mapper.
func (c *Cartridge) PPURead(addr uint16) uint8 {
	return c.mapper.PPURead(addr)
}

// PPUWrite delegates a pattern-table write ($0000-$1FFF) to the mapper.
func (c *Cartridge) PPUWrite(addr uint16, value uint8) {
	c.mapper.PPUWrite(addr, value)
}

// NametableMirror resolves a nametable address to a VRAM page and offset
// per the cartridge's mirroring policy.
func (c *Cartridge) NametableMirror(addr uint16) (page int, offset uint16) {
	return c.mapper.NametableMirror(addr)
}

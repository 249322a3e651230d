package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildINES(prgBanks, chrBanks, mapperID uint8, flags6, flags7 uint8) []byte {
	header := make([]byte, headerSize)
	copy(header[0:4], magic[:])
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = (mapperID << 4) | (flags6 & 0x0F)
	header[7] = (mapperID & 0xF0) | (flags7 & 0x0F)
	return header
}

func buildROM(prgBanks, chrBanks uint8) []byte {
	rom := buildINES(prgBanks, chrBanks, 0, 0, 0)
	prg := make([]byte, int(prgBanks)*16384)
	for i := range prg {
		prg[i] = byte(i)
	}
	rom = append(rom, prg...)
	if chrBanks > 0 {
		chr := make([]byte, int(chrBanks)*8192)
		for i := range chr {
			chr[i] = byte(i + 1)
		}
		rom = append(rom, chr...)
	}
	return rom
}

func TestLoadReader_NROM32K(t *testing.T) {
	rom := buildROM(2, 1)
	cart, err := LoadReader(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.Equal(t, 32768, cart.Header.PRGROMSize)
	assert.Equal(t, 8192, cart.Header.CHRROMSize)
	assert.Equal(t, MirrorHorizontal, cart.Header.Mirror)

	v, ok := cart.CPURead(0x8000)
	assert.True(t, ok)
	assert.Equal(t, uint8(0), v)
}

func TestLoadReader_NROM16KMirrors(t *testing.T) {
	rom := buildROM(1, 1)
	cart, err := LoadReader(bytes.NewReader(rom))
	require.NoError(t, err)

	lo, _ := cart.CPURead(0x8000)
	hi, _ := cart.CPURead(0xC000)
	assert.Equal(t, lo, hi, "16KiB PRG-ROM must mirror into both halves of $8000-$FFFF")
}

func TestLoadReader_CHRRAMWhenNoCHRROM(t *testing.T) {
	rom := buildROM(1, 0)
	cart, err := LoadReader(bytes.NewReader(rom))
	require.NoError(t, err)

	cart.PPUWrite(0x0010, 0x42)
	assert.Equal(t, uint8(0x42), cart.PPURead(0x0010))
}

func TestLoadReader_BadMagic(t *testing.T) {
	rom := buildROM(1, 1)
	rom[0] = 'X'
	_, err := LoadReader(bytes.NewReader(rom))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadReader_UnsupportedFormat(t *testing.T) {
	rom := buildROM(1, 1)
	rom[7] = (rom[7] &^ 0x0C) | 0x04
	_, err := LoadReader(bytes.NewReader(rom))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadReader_UnknownMapper(t *testing.T) {
	rom := buildINES(1, 1, 5, 0, 0)
	rom = append(rom, make([]byte, 16384)...)
	rom = append(rom, make([]byte, 8192)...)
	_, err := LoadReader(bytes.NewReader(rom))
	require.ErrorIs(t, err, ErrUnknownMapper)
}

func TestLoadReader_ShortRead(t *testing.T) {
	rom := buildROM(1, 1)
	truncated := rom[:len(rom)-100]
	_, err := LoadReader(bytes.NewReader(truncated))
	require.ErrorIs(t, err, ErrShortRead)
}

func TestLoadReader_VerticalMirroring(t *testing.T) {
	rom := buildINES(1, 1, 0, 0x01, 0)
	rom = append(rom, make([]byte, 16384)...)
	rom = append(rom, make([]byte, 8192)...)
	cart, err := LoadReader(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.Equal(t, MirrorVertical, cart.Header.Mirror)
}

func TestLoadReader_PRGRAMPersists(t *testing.T) {
	rom := buildROM(1, 1)
	cart, err := LoadReader(bytes.NewReader(rom))
	require.NoError(t, err)

	ok := cart.CPUWrite(0x6000, 0x55)
	require.True(t, ok)
	v, ok := cart.CPURead(0x6000)
	require.True(t, ok)
	assert.Equal(t, uint8(0x55), v)
}

func TestLoadReader_NES20MapperID(t *testing.T) {
	header := make([]byte, headerSize)
	copy(header[0:4], magic[:])
	header[4] = 1 // PRG banks
	header[5] = 1 // CHR banks
	header[6] = 0x00
	header[7] = 0x08 // NES2.0 marker, mapper hi nibble 0
	header[8] = 0x00 // mapper bits 8-11 = 0, submapper = 0
	rom := append(header, make([]byte, 16384)...)
	rom = append(rom, make([]byte, 8192)...)

	cart, err := LoadReader(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.Equal(t, FormatNES20, cart.Header.Format)
	assert.Equal(t, uint16(0), cart.Header.MapperID)
}

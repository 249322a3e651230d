package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBus struct {
	mem map[uint16]uint8
}

func newFakeBus() *fakeBus { return &fakeBus{mem: map[uint16]uint8{}} }

func (b *fakeBus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	return b.mem[addr]
}

func (b *fakeBus) Write(addr uint16, v uint8) {
	addr &= 0x3FFF
	b.mem[addr] = v
}

func TestPPUADDR_PPUDATA_RoundTrip(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0x2345] = 0xAB
	p := New(bus, nil, nil, nil)

	p.WriteRegister(0x2006, 0x23)
	p.WriteRegister(0x2006, 0x45)
	assert.Equal(t, uint16(0x2345), p.v)

	first := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0), first, "first PPUDATA read returns the stale buffer, not the fresh byte")
	assert.Equal(t, uint16(0x2346), p.v, "v must post-increment by 1 when PPUCTRL.I is clear")

	second := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0xAB), second, "second read drains the buffer refilled from $2345")
}

func TestPPUDATA_Increment32(t *testing.T) {
	bus := newFakeBus()
	p := New(bus, nil, nil, nil)
	p.WriteRegister(0x2000, 0x04) // PPUCTRL.I
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)

	p.ReadRegister(0x2007)
	assert.Equal(t, uint16(0x2020), p.v)
}

func TestPPUDATA_PaletteReadsDirectlyAndRefillsFromMirroredNametable(t *testing.T) {
	bus := newFakeBus()
	bus.mem[0x3F00] = 0x30
	bus.mem[0x2F00] = 0x77 // "mirrored nametable under $3F00"
	p := New(bus, nil, nil, nil)

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)

	result := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0x30), result, "palette reads return directly, no buffer delay")
	assert.Equal(t, uint8(0x77), p.readBuffer, "buffer refills from v-0x1000")
}

func TestPPUSTATUS_ClearsVBlankAndWriteToggle(t *testing.T) {
	bus := newFakeBus()
	p := New(bus, nil, nil, nil)
	p.status |= statusVBlank
	p.w = true
	p.lastBus = 0x1F

	result := p.ReadRegister(0x2002)
	assert.Equal(t, uint8(0x80|0x1F), result, "status read returns V plus low 5 open-bus bits")
	assert.Zero(t, p.status&statusVBlank, "reading $2002 clears V")
	assert.False(t, p.w, "reading $2002 clears the write toggle")
}

func TestPPUSCROLL_SetsTAndFineX(t *testing.T) {
	bus := newFakeBus()
	p := New(bus, nil, nil, nil)

	p.WriteRegister(0x2005, 0x7D) // 0111 1101: coarseX=15, fineX=5
	assert.Equal(t, uint8(0x05), p.x)
	assert.Equal(t, uint16(0x0F), p.t&0x001F)

	p.WriteRegister(0x2005, 0x5E) // second write: fineY/coarseY
	assert.False(t, p.w)
}

// dotIndex linearizes (scanline, dot) against the PPU's own starting point
// (-1, 0) so tests can compute exactly how many Clock calls reach a given
// target state, inclusive of processing it.
func dotIndex(scanline, dot int) int { return (scanline+1)*341 + dot }

func TestVBlankNMI_RaisedAtScanline241Dot1(t *testing.T) {
	bus := newFakeBus()
	var nmiCount int
	p := New(bus, func() { nmiCount++ }, nil, nil)
	p.WriteRegister(0x2000, 0x80) // PPUCTRL.V

	for i := 0; i <= dotIndex(241, 1); i++ {
		p.Clock()
	}

	assert.Equal(t, 1, nmiCount, "NMI must fire exactly once on entering VBlank")
	assert.NotZero(t, p.status&statusVBlank)
}

func TestVBlank_ClearedAtPrerenderDot1(t *testing.T) {
	bus := newFakeBus()
	p := New(bus, nil, nil, nil)
	p.status |= statusVBlank

	// One full 262*341-dot frame plus the first two dots of the next runs
	// past (241,1) [sets V] and around to the next (-1,1) [clears V again].
	for i := 0; i <= 262*341+dotIndex(-1, 1); i++ {
		p.Clock()
	}
	assert.Zero(t, p.status&statusVBlank, "VBlank must clear again at the next pre-render line")
}

func TestFrameSink_CalledOncePerFrame(t *testing.T) {
	bus := newFakeBus()
	var frames int
	p := New(bus, nil, func(f *Frame) { frames++ }, nil)

	for i := 0; i < 2*262*341; i++ {
		p.Clock()
	}
	require.Equal(t, 2, frames)
}

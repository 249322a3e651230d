// Package ppu implements the RP2C02 background pipeline: the
// 262-scanline x 341-dot state machine, the fetch/shift-register pixel
// pipeline, the v/t/x/w scroll register file, and VBlank/NMI generation.
// Sprite evaluation and OAM DMA are out of scope; OAMADDR/OAMDATA are kept
// as plain storage so software that pokes them doesn't corrupt background
// state, but nothing reads OAM for rendering.
package ppu

import "github.com/rng999/nesgo/internal/warn"

// Frame is one composited 256x240 RGB frame, one packed 0xRRGGBB pixel per
// slot, row-major.
type Frame [256 * 240]uint32

// Bus is the PPU's view of its address space, satisfied by ppubus.Bus.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// NMIFunc is called once, synchronously, when the PPU raises NMI at VBlank
// start with PPUCTRL.V set. It is a plain callback rather than a CPU
// reference so the PPU never needs to import the cpu package.
type NMIFunc func()

// FrameFunc is called once per frame, synchronously, with the just
// completed frame. The callee must copy out any pixels it needs to keep;
// the buffer is reused for the next frame immediately after the call
// returns.
type FrameFunc func(frame *Frame)

// PPU is the RP2C02 state machine.
type PPU struct {
	bus  Bus
	warn warn.Func

	raiseNMI  NMIFunc
	frameSink FrameFunc

	ctrl, mask, status uint8
	oamAddr            uint8
	oam                [256]uint8

	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8
	lastBus    uint8

	ntLatch, atLatch               uint8
	patternLoLatch, patternHiLatch uint8
	patternLoShift, patternHiShift uint16
	attrLoShift, attrHiShift       uint16

	scanline int16
	dot      int16
	frameOdd bool

	frame Frame
}

// New builds a PPU over bus. raiseNMI is called at VBlank start when
// enabled; frameSink, if non-nil, is called once per completed frame.
// warnFn is stored for non-fatal runtime warnings (warn.Default if nil);
// no PPU code path emits one.
func New(bus Bus, raiseNMI NMIFunc, frameSink FrameFunc, warnFn warn.Func) *PPU {
	if warnFn == nil {
		warnFn = warn.Default
	}
	p := &PPU{bus: bus, raiseNMI: raiseNMI, frameSink: frameSink, warn: warnFn}
	p.Reset()
	return p
}

// Reset restores power-on PPU state. Scroll/VRAM address registers are
// not defined by hardware at reset; this zeroes them for determinism. OAM
// contents and the frame buffer are left as they are.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer, p.lastBus = 0, 0
	p.ntLatch, p.atLatch, p.patternLoLatch, p.patternHiLatch = 0, 0, 0, 0
	p.patternLoShift, p.patternHiShift, p.attrLoShift, p.attrHiShift = 0, 0, 0, 0
	p.scanline, p.dot = -1, 0
	p.frameOdd = false
}

// Clock advances the PPU by exactly one dot, the unit the scheduler feeds
// it once per master clock.
func (p *PPU) Clock() {
	if p.scanline == -1 && p.dot == 0 && p.frameOdd && p.renderingEnabled() {
		p.dot = 1 // odd-frame dot skip
	}

	rendering := p.renderingEnabled()
	onVisibleOrPrerender := p.scanline >= -1 && p.scanline <= 239

	if p.scanline == -1 && p.dot == 1 {
		p.status &^= statusVBlank
	}

	if onVisibleOrPrerender {
		if p.dot >= 1 && p.dot <= 256 {
			if rendering {
				p.shiftAndEmitPixel()
			}
		}
		if rendering && ((p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)) {
			p.fetchCycle()
		}
		if p.dot == 256 && rendering {
			p.incrementFineY()
		}
		if p.dot == 257 && rendering {
			p.copyHorizontal()
		}
		if p.scanline == -1 && p.dot >= 280 && p.dot <= 304 && rendering {
			p.copyVertical()
		}
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 && p.raiseNMI != nil {
			p.raiseNMI()
		}
		if p.frameSink != nil {
			p.frameSink(&p.frame)
		}
	}

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameOdd = !p.frameOdd
		}
	}
}

// shiftAndEmitPixel composites and writes one pixel from the current fine-x
// bit of the shift registers, then shifts all four by one bit. Called on
// dots 1-256 of the visible and pre-render scanlines.
func (p *PPU) shiftAndEmitPixel() {
	bitMux := uint16(0x8000) >> p.x

	var idx uint8
	if p.attrHiShift&bitMux != 0 {
		idx |= 0x08
	}
	if p.attrLoShift&bitMux != 0 {
		idx |= 0x04
	}
	if p.patternHiShift&bitMux != 0 {
		idx |= 0x02
	}
	if p.patternLoShift&bitMux != 0 {
		idx |= 0x01
	}

	var paletteAddr uint16
	if idx&0x03 == 0 {
		paletteAddr = 0x3F00
	} else {
		paletteAddr = 0x3F00 | uint16(idx)
	}
	color := p.bus.Read(paletteAddr) & 0x3F

	if p.scanline >= 0 && p.scanline < 240 {
		x := int(p.dot - 1)
		p.frame[int(p.scanline)*256+x] = rgbFor(color)
	}

	p.patternLoShift <<= 1
	p.patternHiShift <<= 1
	p.attrLoShift <<= 1
	p.attrHiShift <<= 1
}

// fetchCycle runs the 8-dot background fetch cadence: nametable byte,
// attribute byte, pattern low byte, pattern high byte, each two dots apart,
// with the coarse-X increment folded into the eighth dot.
func (p *PPU) fetchCycle() {
	switch p.dot % 8 {
	case 1:
		if (p.dot >= 9 && p.dot <= 257) || (p.dot >= 321 && p.dot <= 337) {
			p.reloadShiftRegisters()
		}
		p.ntLatch = p.bus.Read(0x2000 | (p.v & 0x0FFF))
	case 3:
		attrAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		attrByte := p.bus.Read(attrAddr)
		shift := ((p.v >> 4) & 4) | (p.v & 2)
		p.atLatch = (attrByte >> shift) & 0x03
	case 5:
		p.patternLoLatch = p.bus.Read(p.patternAddr())
	case 7:
		p.patternHiLatch = p.bus.Read(p.patternAddr() | 8)
	case 0:
		p.incrementCoarseX()
	}
}

func (p *PPU) patternAddr() uint16 {
	var base uint16
	if p.ctrl&ctrlBGPatternPage != 0 {
		base = 0x1000
	}
	return base | (uint16(p.ntLatch) << 4) | ((p.v >> 12) & 7)
}

func (p *PPU) reloadShiftRegisters() {
	p.patternLoShift = (p.patternLoShift & 0xFF00) | uint16(p.patternLoLatch)
	p.patternHiShift = (p.patternHiShift & 0xFF00) | uint16(p.patternHiLatch)
	var loFill, hiFill uint16
	if p.atLatch&0x01 != 0 {
		loFill = 0x00FF
	}
	if p.atLatch&0x02 != 0 {
		hiFill = 0x00FF
	}
	p.attrLoShift = (p.attrLoShift & 0xFF00) | loFill
	p.attrHiShift = (p.attrHiShift & 0xFF00) | hiFill
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 0x001F {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontal() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVertical() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

package cpu

// Mode is one of the 6502's 13 addressing modes.
type Mode uint8

const (
	ModeIMP Mode = iota // implied
	ModeACC             // accumulator
	ModeIMM             // immediate
	ModeZP0             // zero page
	ModeZPX             // zero page,X
	ModeZPY             // zero page,Y
	ModeREL             // relative (branches)
	ModeABS             // absolute
	ModeABX             // absolute,X
	ModeABY             // absolute,Y
	ModeIND             // indirect (JMP only)
	ModeIZX             // (zero page,X)
	ModeIZY             // (zero page),Y
)

// resolve computes the effective address for mode, advancing PC past the
// instruction's operand bytes and reporting whether an indexed access
// crossed a page boundary (relevant for the +1-cycle penalty on loads and
// all branches).
func (c *CPU) resolve(mode Mode) (addr uint16, pageCrossed bool) {
	switch mode {
	case ModeIMP, ModeACC:
		return 0, false

	case ModeIMM:
		addr = c.PC
		c.PC++
		return addr, false

	case ModeZP0:
		addr = uint16(c.read(c.PC))
		c.PC++
		return addr, false

	case ModeZPX:
		base := c.read(c.PC)
		c.PC++
		return uint16(base + c.X), false

	case ModeZPY:
		base := c.read(c.PC)
		c.PC++
		return uint16(base + c.Y), false

	case ModeREL:
		offset := int8(c.read(c.PC))
		c.PC++
		base := c.PC
		target := uint16(int32(base) + int32(offset))
		return target, (base & 0xFF00) != (target & 0xFF00)

	case ModeABS:
		lo := uint16(c.read(c.PC))
		hi := uint16(c.read(c.PC + 1))
		c.PC += 2
		return (hi << 8) | lo, false

	case ModeABX:
		lo := uint16(c.read(c.PC))
		hi := uint16(c.read(c.PC + 1))
		c.PC += 2
		base := (hi << 8) | lo
		addr = base + uint16(c.X)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case ModeABY:
		lo := uint16(c.read(c.PC))
		hi := uint16(c.read(c.PC + 1))
		c.PC += 2
		base := (hi << 8) | lo
		addr = base + uint16(c.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case ModeIND:
		loPtr := uint16(c.read(c.PC))
		hiPtr := uint16(c.read(c.PC + 1))
		c.PC += 2
		ptr := (hiPtr << 8) | loPtr
		lo := uint16(c.read(ptr))
		// Documented 6502 bug: if the pointer's low byte is $FF, the high
		// byte wraps to the start of the same page instead of carrying.
		var hi uint16
		if ptr&0x00FF == 0x00FF {
			hi = uint16(c.read(ptr & 0xFF00))
		} else {
			hi = uint16(c.read(ptr + 1))
		}
		return (hi << 8) | lo, false

	case ModeIZX:
		base := c.read(c.PC)
		c.PC++
		ptr := base + c.X
		lo := uint16(c.read(uint16(ptr)))
		hi := uint16(c.read(uint16(ptr + 1)))
		return (hi << 8) | lo, false

	case ModeIZY:
		zp := c.read(c.PC)
		c.PC++
		lo := uint16(c.read(uint16(zp)))
		hi := uint16(c.read(uint16(zp + 1)))
		base := (hi << 8) | lo
		addr = base + uint16(c.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	default:
		return 0, false
	}
}

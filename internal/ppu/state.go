package ppu

// State is a read-only snapshot of PPU rendering state, used by
// internal/debug and tests.
type State struct {
	Scanline, Dot        int16
	V, T                 uint16
	X                    uint8
	W                    bool
	Ctrl, Mask, Status   uint8
}

// Snapshot returns the PPU's current scanline/dot/scroll-register state
// without side effects (it does not touch the $2002 read-clears-V path).
func (p *PPU) Snapshot() State {
	return State{
		Scanline: p.scanline,
		Dot:      p.dot,
		V:        p.v,
		T:        p.t,
		X:        p.x,
		W:        p.w,
		Ctrl:     p.ctrl,
		Mask:     p.mask,
		Status:   p.status,
	}
}

// FrameBuffer returns a pointer to the PPU's internal frame buffer. The pointer
// is stable across the PPU's lifetime; callers that need to retain pixels
// past the next frame must copy them out.
func (p *PPU) FrameBuffer() *Frame { return &p.frame }

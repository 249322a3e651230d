// Package warn defines the non-fatal runtime warning taxonomy and a default
// glog-backed sink for it. Runtime warnings are logged and never abort
// emulation: illegal opcodes execute as NOPs, unhandled bus reads return 0.
package warn

import "github.com/golang/glog"

// Kind identifies the category of a runtime warning.
type Kind int

const (
	IllegalOpcode Kind = iota
	UnhandledBusAccess
)

func (k Kind) String() string {
	switch k {
	case IllegalOpcode:
		return "IllegalOpcode"
	case UnhandledBusAccess:
		return "UnhandledBusAccess"
	default:
		return "Unknown"
	}
}

// Warning is a single non-fatal event surfaced to the host.
type Warning struct {
	Kind Kind
	PC   uint16 // valid for IllegalOpcode
	Addr uint16 // valid for UnhandledBusAccess
	Op   uint8  // valid for IllegalOpcode
}

// Func is the callback signature a host registers to observe warnings. The
// zero value of Func is never called directly; callers should fall back to
// Default when none is registered.
type Func func(Warning)

// Default logs through glog at a level appropriate to how noisy the source
// tends to be: illegal opcodes are rare and worth a Warning; unhandled bus
// accesses (cartridge-range addresses the mapper does not claim, e.g.
// $4020-$5FFF on NROM) can recur on every frame, so they're only emitted
// at V(1).
func Default(w Warning) {
	switch w.Kind {
	case IllegalOpcode:
		glog.Warningf("illegal opcode %#02x at PC=%#04x", w.Op, w.PC)
	case UnhandledBusAccess:
		glog.V(1).Infof("unhandled bus access at %#04x", w.Addr)
	}
}

package cartridge

import "errors"

// LoadError taxonomy. All failures to load a cartridge surface one of
// these (optionally wrapped with additional context).
var (
	ErrIo                       = errors.New("cartridge: io error")
	ErrShortRead                = errors.New("cartridge: short read")
	ErrBadMagic                 = errors.New("cartridge: bad magic")
	ErrUnsupportedFormat        = errors.New("cartridge: unsupported container format")
	ErrUnknownMapper            = errors.New("cartridge: unknown mapper")
	ErrUnsupportedMapperFeature = errors.New("cartridge: unsupported mapper feature")
)

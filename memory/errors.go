package memory

import "errors"

// Sentinel errors for Memory construction.
var (
	// ErrBadDepth indicates a non-positive Depth was supplied.
	ErrBadDepth = errors.New("memory: depth must be positive")

	// ErrBadWidth indicates a non-positive Width was supplied.
	ErrBadWidth = errors.New("memory: width must be positive")

	// ErrInitTooWide indicates an init entry is negative or does not fit
	// within Width bits, unsigned; New rejects such a row rather than
	// reducing it.
	ErrInitTooWide = errors.New("memory: init entry wider than memory word")

	// ErrInitTooLong indicates more init entries were supplied than
	// Depth rows exist.
	ErrInitTooLong = errors.New("memory: more init entries than depth")

	// ErrBadGranularity indicates a write port's Granularity does not
	// evenly divide the memory's Width.
	ErrBadGranularity = errors.New("memory: granularity must evenly divide width")

	// ErrBadEnableWidth indicates a write port's En value is not exactly
	// Width/Granularity bits wide.
	ErrBadEnableWidth = errors.New("memory: enable width must equal width/granularity")

	// ErrBadAddrWidth indicates a port's Addr value cannot address every
	// row (i.e. its width is narrower than ceil(log2(Depth))).
	ErrBadAddrWidth = errors.New("memory: address value too narrow for depth")
)

package value

import "fmt"

// Slice selects the half-open bit range [Start, Stop) of Value, LSB-first
// (spec §3). The result is always unsigned width Stop-Start (spec
// testable property 3).
type Slice struct {
	Value Value
	Start int
	Stop  int
}

func (*Slice) isValue() {}

// NewSlice validates 0 <= start <= stop <= len(v) before constructing the
// node (spec §3 invariant).
func NewSlice(v Value, start, stop int) (*Slice, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	n := Len(v)
	if start < 0 || start > stop || stop > n {
		return nil, fmt.Errorf("value.NewSlice(start=%d, stop=%d, len=%d): %w", start, stop, n, ErrSliceRange)
	}
	return &Slice{Value: v, Start: start, Stop: stop}, nil
}

// Bit selects a single bit, equivalent to NewSlice(v, i, i+1).
func Bit(v Value, i int) (*Slice, error) {
	return NewSlice(v, i, i+1)
}

package value

import "fmt"

// Part is a dynamic window into Value: `value[offset*stride +: width]`
// (spec §3). Unlike Slice, Offset is itself a Value (commonly a Signal),
// so the window's position is determined at simulation/synthesis time,
// not at elaboration time. Bits read outside [0, len(value)) are zero.
type Part struct {
	Value  Value
	Offset Value
	Width  int
	Stride int
}

func (*Part) isValue() {}

// NewPart builds a Part with the given static width and stride. Stride
// defaults to 1 when 0 is passed, matching the common case of a
// contiguous window.
func NewPart(v, offset Value, width, stride int) (*Part, error) {
	if v == nil || offset == nil {
		return nil, ErrNilValue
	}
	if width < 0 {
		return nil, fmt.Errorf("value.NewPart: width %d cannot be negative", width)
	}
	if stride <= 0 {
		stride = 1
	}
	return &Part{Value: v, Offset: offset, Width: width, Stride: stride}, nil
}

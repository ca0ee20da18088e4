package value

import "errors"

// Sentinel errors for value construction and traversal.
var (
	// ErrNilValue indicates a nil Value was passed where one is required.
	ErrNilValue = errors.New("value: nil value")

	// ErrBadLHS indicates a Value was used as an assignment target that
	// is not a Signal, nor a Slice/Cat/Part/transparent-unary composed
	// entirely of legal LHS values (spec §4.2).
	ErrBadLHS = errors.New("value: not a legal assignment target")

	// ErrSliceRange indicates Slice(v, start, stop) violated
	// 0 <= start <= stop <= len(v).
	ErrSliceRange = errors.New("value: slice bounds out of range")

	// ErrEmptyArrayProxy indicates ArrayProxy was constructed with zero
	// elements.
	ErrEmptyArrayProxy = errors.New("value: array proxy has no elements")

	// ErrNegativeCycles indicates Sample was constructed with a negative
	// cycle count.
	ErrNegativeCycles = errors.New("value: sample cycles cannot be negative")
)

// Value is the closed set of bit-vector expression nodes. Every variant
// in this package implements it; isValue is unexported so the set cannot
// be extended from outside the package (spec §9: "Value as tagged sum").
type Value interface {
	isValue()
}

// Len returns the bit width of v. It is a thin convenience wrapper around
// ShapeOf, matching the source's `len(value)` idiom used throughout
// spec §3/§4.
func Len(v Value) int {
	return ShapeOf(v).Width
}

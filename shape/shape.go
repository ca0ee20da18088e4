package shape

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for shape construction.
var (
	// ErrNegativeWidth indicates a width less than zero was requested.
	ErrNegativeWidth = errors.New("shape: width cannot be negative")

	// ErrZeroWidthSigned indicates signed(0) was requested, which is
	// disallowed: there is no representation for a signed value with no
	// sign bit and no magnitude bits.
	ErrZeroWidthSigned = errors.New("shape: signed shape cannot have width 0")

	// ErrEmptyRange indicates FromRange was given an empty [min, max) span.
	ErrEmptyRange = errors.New("shape: range must not be empty")

	// ErrEmptyEnum indicates FromEnum was given no members.
	ErrEmptyEnum = errors.New("shape: enum must have at least one member")
)

// Shape is a (width, signed) pair describing the bit layout of a value.
//
// Shape is comparable with ==; two Shapes are equal iff their Width and
// Signed fields match. Construct one with Unsigned, SignedShape, FromRange, or
// FromEnum rather than composite-literal, so invariants are enforced.
type Shape struct {
	Width  int
	Signed bool
}

// Unsigned returns the shape of an unsigned value of the given width.
// A width of 0 is legal (it denotes the empty value, used e.g. by an
// empty Cat).
func Unsigned(width int) (Shape, error) {
	if width < 0 {
		return Shape{}, fmt.Errorf("shape.Unsigned(%d): %w", width, ErrNegativeWidth)
	}
	return Shape{Width: width, Signed: false}, nil
}

// MustUnsigned is Unsigned, panicking on error. Intended for package-level
// constants and literals where width is known to be non-negative at
// compile time.
func MustUnsigned(width int) Shape {
	s, err := Unsigned(width)
	if err != nil {
		panic(err)
	}
	return s
}

// SignedShape returns the shape of a signed value of the given width. Width 0
// is rejected: a signed shape always needs at least its sign bit.
func SignedShape(width int) (Shape, error) {
	if width < 0 {
		return Shape{}, fmt.Errorf("shape.SignedShape(%d): %w", width, ErrNegativeWidth)
	}
	if width == 0 {
		return Shape{}, fmt.Errorf("shape.SignedShape(0): %w", ErrZeroWidthSigned)
	}
	return Shape{Width: width, Signed: true}, nil
}

// MustSigned is SignedShape, panicking on error.
func MustSigned(width int) Shape {
	s, err := SignedShape(width)
	if err != nil {
		panic(err)
	}
	return s
}

// FromRange derives the minimal shape covering the half-open integer
// range [min, max). If min >= 0 the shape is unsigned; otherwise it is
// signed. Mirrors spec §3: "a finite integer range (chooses minimum
// signed/unsigned representation covering min..=max-1)".
func FromRange(min, max int64) (Shape, error) {
	if max <= min {
		return Shape{}, fmt.Errorf("shape.FromRange(%d, %d): %w", min, max, ErrEmptyRange)
	}
	top := max - 1
	if min >= 0 {
		return Unsigned(bitLen(big.NewInt(top)))
	}
	// Signed: need room for the most negative and most positive members.
	negWidth := bitLenSignedFloor(min)
	posWidth := bitLenSignedCeil(top)
	width := negWidth
	if posWidth > width {
		width = posWidth
	}
	if width == 0 {
		width = 1
	}
	return SignedShape(width)
}

// EnumMember names one constant of an enum-like set, for FromEnum.
type EnumMember struct {
	Name  string
	Value *big.Int
}

// FromEnum derives the minimal unsigned (or signed, if any member is
// negative) shape covering every member's value. Mirrors spec §3:
// "an enum-like set of named integer constants".
func FromEnum(members []EnumMember) (Shape, error) {
	if len(members) == 0 {
		return Shape{}, ErrEmptyEnum
	}
	min, max := members[0].Value, members[0].Value
	for _, m := range members[1:] {
		if m.Value.Cmp(min) < 0 {
			min = m.Value
		}
		if m.Value.Cmp(max) > 0 {
			max = m.Value
		}
	}
	if min.Sign() >= 0 {
		return Unsigned(bitLen(max))
	}
	negWidth := bitLenSignedFloor(min.Int64())
	posWidth := bitLenSignedCeil(max.Int64())
	width := negWidth
	if posWidth > width {
		width = posWidth
	}
	return SignedShape(width)
}

// bitLen returns the number of bits needed to hold v (v >= 0) unsigned.
func bitLen(v *big.Int) int {
	if v.Sign() <= 0 {
		return 0
	}
	return v.BitLen()
}

// bitLenSignedCeil returns bits needed to represent v as the positive
// half of a two's-complement signed value (i.e. v must fit in width-1
// magnitude bits).
func bitLenSignedCeil(v int64) int {
	if v < 0 {
		return 0
	}
	return big.NewInt(v).BitLen() + 1
}

// bitLenSignedFloor returns bits needed to represent v (v <= 0) as the
// most-negative two's-complement value representable.
func bitLenSignedFloor(v int64) int {
	if v >= 0 {
		return 0
	}
	// -2^(n-1) is representable in n bits; find smallest n such that
	// v >= -2^(n-1).
	mag := new(big.Int).Neg(big.NewInt(v))
	mag.Sub(mag, big.NewInt(1))
	return bitLen(mag) + 1
}

// String renders the shape the way torii's Python original does:
// "unsigned(N)" or "signed(N)".
func (s Shape) String() string {
	if s.Signed {
		return fmt.Sprintf("signed(%d)", s.Width)
	}
	return fmt.Sprintf("unsigned(%d)", s.Width)
}

package value

import "github.com/shrine-maiden-heavy-industries/torii-go/shape"

// AnyKind distinguishes the two flavors of symbolic nondeterministic
// input used by formal verification (spec §3).
type AnyKind int

const (
	// AnyConst is constant across the whole trace ($anyconst in RTLIL).
	AnyConst AnyKind = iota
	// AnySeq may change every cycle ($anyseq in RTLIL).
	AnySeq
)

// String renders the RTLIL cell-name suffix for this kind ("anyconst" or
// "anyseq"), matching spec §4.7.2's `$anyconst`/`$anyseq`.
func (k AnyKind) String() string {
	if k == AnySeq {
		return "anyseq"
	}
	return "anyconst"
}

// AnyValue is a symbolic nondeterministic input, for use only in formal
// properties (spec §3).
type AnyValue struct {
	Kind  AnyKind
	Shape shape.Shape
}

func (*AnyValue) isValue() {}

// NewAnyValue constructs an AnyValue of the given kind and shape.
func NewAnyValue(kind AnyKind, sh shape.Shape) *AnyValue {
	return &AnyValue{Kind: kind, Shape: sh}
}

package value

import (
	"math/big"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
)

// Const is a fixed bit-vector literal (spec §3: "Const(value: big-integer,
// shape)"). Const values are immutable; NewConst copies the supplied
// *big.Int so later mutation by the caller cannot corrupt a shared tree.
type Const struct {
	Val   *big.Int
	Shape shape.Shape
}

func (*Const) isValue() {}

// NewConst wraps v at the given shape. The stored value is reduced modulo
// 2^width (spec testable property 9: "recovers c mod 2^W").
func NewConst(v *big.Int, sh shape.Shape) *Const {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(sh.Width))
	reduced := new(big.Int).Mod(new(big.Int).Set(v), mod)
	if reduced.Sign() < 0 {
		reduced.Add(reduced, mod)
	}
	return &Const{Val: reduced, Shape: sh}
}

// NewConstInt is a convenience constructor for small literals, inferring
// an unsigned shape wide enough to hold v when width is 0 (signed(64)
// when v is negative).
func NewConstInt(v int64, width int) *Const {
	sh := shape.MustUnsigned(width)
	if width == 0 {
		w, _ := shape.FromRange(0, v+1)
		if v < 0 {
			w = shape.MustSigned(64)
		}
		sh = w
	}
	return NewConst(big.NewInt(v), sh)
}

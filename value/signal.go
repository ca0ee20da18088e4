package value

import (
	"fmt"
	"math/big"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
)

// Decoder renders a signal's raw value as a human-readable string (e.g.
// for an enum-backed signal). It is stored on the Signal only: the rtlil
// package does not read it, so no enum_value_<bits> attributes are
// emitted for a decoded signal.
type Decoder func(v *big.Int) string

// Signal is a named storage cell: a Value that may also appear on the
// left-hand side of an assignment (spec §3). Signal is allocated from an
// Arena so its ID is stable and comparison-friendly without relying on
// Go pointer identity for the cross-package maps in fragment/ir/rtlil.
type Signal struct {
	ID        SignalID
	Shape     shape.Shape
	Reset     *big.Int
	ResetLess bool
	Name      string
	Attrs     map[string]string
	Decoder   Decoder

	resetRaw *big.Int // staged by WithReset/WithResetBig, consumed in NewSignal
}

func (*Signal) isValue() {}

// SignalOption configures a Signal at construction time, following the
// functional-options convention used throughout this module (see
// SPEC_FULL.md "AMBIENT STACK").
type SignalOption func(*Signal)

// WithReset sets the signal's reset value (reduced modulo 2^width).
func WithReset(v int64) SignalOption {
	return func(s *Signal) { s.resetRaw = big.NewInt(v) }
}

// WithResetBig sets the signal's reset value from an arbitrary-precision
// integer.
func WithResetBig(v *big.Int) SignalOption {
	return func(s *Signal) { s.resetRaw = new(big.Int).Set(v) }
}

// WithResetLess marks the signal as never synchronously reset, even if
// its clock domain has a reset (spec §3 ClockDomain: "reset_less ⇒ reset
// is absent" applies per-domain; WithResetLess is the per-signal override
// of the same idea).
func WithResetLess() SignalOption {
	return func(s *Signal) { s.ResetLess = true }
}

// WithName overrides the signal's display name; if omitted, NewSignal
// assigns an anonymous name derived from its arena-assigned ID.
func WithName(name string) SignalOption {
	return func(s *Signal) { s.Name = name }
}

// WithAttr attaches a single string-valued RTLIL attribute.
func WithAttr(key, val string) SignalOption {
	return func(s *Signal) {
		if s.Attrs == nil {
			s.Attrs = map[string]string{}
		}
		s.Attrs[key] = val
	}
}

// WithDecoder attaches a Decoder for enum-style display.
func WithDecoder(d Decoder) SignalOption {
	return func(s *Signal) { s.Decoder = d }
}

// NewSignal allocates a fresh Signal from arena at the given shape,
// applying opts in order (later options override earlier ones, matching
// builder.newConfig's convention).
func NewSignal(arena *Arena, sh shape.Shape, opts ...SignalOption) *Signal {
	s := &Signal{ID: arena.alloc(), Shape: sh}
	for _, opt := range opts {
		opt(s)
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("$%d", s.ID)
	}
	if s.resetRaw != nil {
		s.Reset = reduceReset(s.resetRaw, sh)
	} else {
		s.Reset = big.NewInt(0)
	}
	s.resetRaw = nil
	return s
}

// reduceReset folds v into sh's representable range, mirroring
// NewConst's mod-2^width reduction.
func reduceReset(v *big.Int, sh shape.Shape) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(sh.Width))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	return r
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// Sentinel errors for clock domain construction.
var (
	// ErrEmptyName indicates a domain was given an empty name.
	ErrEmptyName = errors.New("domain: name cannot be empty")

	// ErrResetLessWithReset indicates both ResetLess and an explicit
	// Reset signal were supplied (spec §3: "reset_less ⇒ reset is
	// absent").
	ErrResetLessWithReset = errors.New("domain: reset-less domain cannot have a reset signal")

	// ErrComb reports that the combinational pseudo-domain (the empty
	// name fragment.CombDomain in fragment driver sets) was asked for
	// properties only a real domain has, e.g. a clock edge. No code in
	// this module returns it.
	ErrComb = errors.New("domain: the combinational domain has no clock or reset")
)

// Edge selects which transition of the clock drives synchronous logic.
type Edge int

const (
	// Pos triggers on the rising edge (the default).
	Pos Edge = iota
	// Neg triggers on the falling edge.
	Neg
)

// ClockDomain is a named (clock, reset, polarity, sync/async) tuple that
// governs every synchronously-driven signal assigned within it (spec
// §3). Construct with New; the zero value is not a valid ClockDomain.
type ClockDomain struct {
	Name       string
	Clock      *value.Signal
	Reset      *value.Signal // nil iff ResetLess
	AsyncReset bool
	ResetLess  bool
	ClockEdge  Edge
	Local      bool
}

// Option configures a ClockDomain at construction time.
type Option func(*ClockDomain)

// WithAsyncReset marks the domain's reset as asynchronous.
func WithAsyncReset() Option {
	return func(d *ClockDomain) { d.AsyncReset = true }
}

// WithResetLess marks the domain as having no reset signal at all.
func WithResetLess() Option {
	return func(d *ClockDomain) { d.ResetLess = true }
}

// WithClockEdge selects which clock edge drives this domain's
// synchronous logic.
func WithClockEdge(e Edge) Option {
	return func(d *ClockDomain) { d.ClockEdge = e }
}

// WithLocal marks the domain as local to its defining fragment: it is
// never propagated outward to a parent (spec §3).
func WithLocal() Option {
	return func(d *ClockDomain) { d.Local = true }
}

// New constructs a ClockDomain named name, allocating its clock (and,
// unless WithResetLess is given, reset) signal from arena.
func New(arena *value.Arena, name string, opts ...Option) (*ClockDomain, error) {
	if name == "" {
		return nil, fmt.Errorf("domain.New: %w", ErrEmptyName)
	}
	d := &ClockDomain{Name: name}
	for _, opt := range opts {
		opt(d)
	}
	bit := shape.MustUnsigned(1)
	d.Clock = value.NewSignal(arena, bit, value.WithName(name+"_clk"))
	if !d.ResetLess {
		d.Reset = value.NewSignal(arena, bit, value.WithName(name+"_rst"))
	}
	return d, nil
}

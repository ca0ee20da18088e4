package stmt

import (
	"errors"
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// Sentinel errors for statement-tree construction.
var (
	// ErrBadPattern indicates a Switch case pattern contained a
	// character other than '0', '1', or '-', or did not match the
	// width of the switch's test value.
	ErrBadPattern = errors.New("stmt: pattern must be '0'/'1'/'-' and match test width")

	// ErrNilTest indicates NewSwitch or NewProperty was given a nil
	// test value.
	ErrNilTest = errors.New("stmt: test value cannot be nil")
)

// SrcLoc records where in the caller's source a statement originated,
// for diagnostics and for the emitter's optional `src` attributes (spec
// §4.7, "emit_src").
type SrcLoc struct {
	File string
	Line int
}

// Statement is the closed set of sequential-logic AST nodes (spec §3).
type Statement interface {
	isStatement()
}

// List is an ordered statement sequence. Order is significant throughout
// this module: later assignments to the same signal win (spec §3, §5
// "Statement order").
type List []Statement

// Assign is `lhs <= rhs`; lhs must satisfy value.LHSSignals (spec §3).
// Domain is the clock-domain name this assignment is driven in, or ""
// for combinational — set by the builder package's domain selector (spec
// §4.4).
type Assign struct {
	LHS    value.Value
	RHS    value.Value
	Domain string
	SrcLoc SrcLoc
}

func (*Assign) isStatement() {}

// NewAssign validates that lhs is a legal assignment target before
// constructing the node.
func NewAssign(lhs, rhs value.Value, domain string) (*Assign, error) {
	if lhs == nil || rhs == nil {
		return nil, fmt.Errorf("stmt.NewAssign: %w", value.ErrNilValue)
	}
	if _, err := value.LHSSignals(lhs); err != nil {
		return nil, fmt.Errorf("stmt.NewAssign: %w", err)
	}
	return &Assign{LHS: lhs, RHS: rhs, Domain: domain}, nil
}

// Pattern is a fixed-width bit string over {0, 1, -}; '-' means
// "don't care" at that bit position (spec §3).
type Pattern string

// Matches reports whether a constant bit string of the same width
// matches p bit-for-bit, treating '-' as always-matching.
func (p Pattern) Matches(bits string) bool {
	if len(p) != len(bits) {
		return false
	}
	for i := range p {
		if p[i] != '-' && p[i] != bits[i] {
			return false
		}
	}
	return true
}

func validPattern(p Pattern, width int) bool {
	if len(p) != width {
		return false
	}
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '0', '1', '-':
		default:
			return false
		}
	}
	return true
}

// Case is one arm of a Switch: a set of alternative patterns (any one of
// which selects this arm) guarding a nested statement list. Patterns are
// plural per case to express OR-of-patterns without duplicating the body.
type Case struct {
	Patterns []Pattern
	Body     List
}

// Switch is a priority decision tree over Test (spec §3, §4.3). Case
// order is preserved and is semantically significant: the first matching
// case wins, even when a later case's pattern also matches (spec testable
// property 5).
type Switch struct {
	Test   value.Value
	Cases  []Case
	SrcLoc SrcLoc
}

func (*Switch) isStatement() {}

// NewSwitch validates every case pattern against test's width before
// constructing the node.
func NewSwitch(test value.Value, cases []Case) (*Switch, error) {
	if test == nil {
		return nil, fmt.Errorf("stmt.NewSwitch: %w", ErrNilTest)
	}
	width := value.Len(test)
	for ci, c := range cases {
		for _, p := range c.Patterns {
			if !validPattern(p, width) {
				return nil, fmt.Errorf("stmt.NewSwitch: case %d pattern %q: %w", ci, p, ErrBadPattern)
			}
		}
	}
	cp := make([]Case, len(cases))
	copy(cp, cases)
	return &Switch{Test: test, Cases: cp}, nil
}

// PropertyKind distinguishes the three formal-only property statements
// (spec §3).
type PropertyKind int

const (
	Assert PropertyKind = iota
	Assume
	Cover
)

// String renders the RTLIL cell-name suffix for this kind.
func (k PropertyKind) String() string {
	switch k {
	case Assert:
		return "assert"
	case Assume:
		return "assume"
	case Cover:
		return "cover"
	default:
		return "unknown"
	}
}

// Property is a formal-only assert/assume/cover statement (spec §3).
// Enable gates when Test is actually checked (e.g. "only after reset
// deasserts"); Name optionally labels the property for diagnostics.
type Property struct {
	Kind   PropertyKind
	Test   value.Value
	Enable value.Value
	Name   string
	SrcLoc SrcLoc
}

func (*Property) isStatement() {}

// NewProperty constructs a Property statement. A nil Enable means
// "always enabled".
func NewProperty(kind PropertyKind, test, enable value.Value, name string) (*Property, error) {
	if test == nil {
		return nil, fmt.Errorf("stmt.NewProperty: %w", ErrNilTest)
	}
	return &Property{Kind: kind, Test: test, Enable: enable, Name: name}, nil
}

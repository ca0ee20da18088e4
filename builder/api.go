// api.go - thin public entry-point for the builder package.
//
// Design contract:
//   - One constructor: New(arena, opts...). Creates the Module and its
//     underlying fragment.Fragment; every other method mutates that one
//     fragment in place.
//   - Functional options (Option) resolve into an immutable config at
//     construction time, following the pattern used across this module
//     (domain.Option, rtlil.Option).
//   - Every mutating method returns a sentinel-wrapped error instead of
//     panicking; a Module is safe to abandon mid-construction on error.

package builder

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// Module is the builder's entry point (spec §4.4): it owns the
// fragment.Fragment being assembled, the value.Arena its signals are
// allocated from, and the open/close stack of If/Switch/FSM blocks
// currently in progress.
//
// Module is not safe for concurrent use by multiple goroutines; each
// goroutine should build its own fragment and hand the finished result
// to its caller.
type Module struct {
	arena *value.Arena
	frag  *fragment.Fragment

	domain    string
	domainSet bool

	stack []frame
}

// New creates a Module backed by a fresh fragment.Fragment, allocating
// its signals from arena. Every Signal referenced by this Module's
// Assign/If/Switch/FSM calls must itself have been allocated from arena;
// mixing arenas produces SignalIDs with no meaning in the resulting
// fragment.
func New(arena *value.Arena, opts ...Option) *Module {
	cfg := newConfig(opts...)
	f := fragment.New()
	for k, v := range cfg.attrs {
		f.Attrs[k] = v
	}
	f.Flatten = cfg.flatten
	return &Module{arena: arena, frag: f}
}

// Fragment returns the fragment.Fragment under construction. Callers
// typically hand this to ir.Prepare once the Module is fully built.
func (m *Module) Fragment() *fragment.Fragment {
	return m.frag
}

// Arena returns the value.Arena this Module's signals are allocated
// from.
func (m *Module) Arena() *value.Arena {
	return m.arena
}

// AddDomain registers a clock domain for use by this Module's Sync and
// Domain selectors (spec §3 "Fragment.domains").
func (m *Module) AddDomain(d *domain.ClockDomain) {
	m.frag.AddDomain(d)
}

// Assign records `lhs <= rhs` in whichever domain is currently selected
// (Comb/Sync/Domain), appending it to the innermost open block if one
// exists, and registers every Signal in lhs as driven in that domain
// (spec §4.4 "collect driver sets by domain").
func (m *Module) Assign(lhs, rhs value.Value) error {
	if !m.domainSet {
		return fmt.Errorf("builder.Assign: %w", ErrDomainRequired)
	}
	if lhs == nil || rhs == nil {
		return fmt.Errorf("builder.Assign: %w", ErrNilValue)
	}
	assign, err := stmt.NewAssign(lhs, rhs, m.domain)
	if err != nil {
		return fmt.Errorf("builder.Assign: %w", err)
	}
	if err := m.appendStmt(assign); err != nil {
		return err
	}
	signals, err := value.LHSSignals(lhs)
	if err != nil {
		return fmt.Errorf("builder.Assign: %w", err)
	}
	for _, sig := range signals {
		if err := m.frag.AddDriver(sig, m.domain); err != nil {
			return fmt.Errorf("builder.Assign: %w", err)
		}
	}
	return nil
}

// Submodule attaches sub as a named child fragment (spec §3
// "Fragment.subfragments"). An empty name leaves the child anonymous.
func (m *Module) Submodule(sub *fragment.Fragment, name string) error {
	if err := m.frag.AddSubfragment(sub, name); err != nil {
		return fmt.Errorf("builder.Submodule: %w", err)
	}
	return nil
}

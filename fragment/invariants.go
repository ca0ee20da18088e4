package fragment

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// CheckInvariants re-verifies, after elaboration, the structural
// invariants spec §3 requires of a fully-resolved Fragment:
//
//  1. Every signal recorded in a driver set has at least one LHS
//     appearance somewhere in f's own statement list (a driver-set
//     entry with no assignment is a dangling declaration).
//  2. Every domain name referenced by an Assign statement is present
//     in f.Domains, or is CombDomain.
//
// Subfragment name uniqueness is enforced at AddSubfragment time and is
// not re-checked here.
func (f *Fragment) CheckInvariants() error {
	if f == nil {
		return ErrNilFragment
	}

	assigned := map[value.SignalID]bool{}
	var walk func(list stmt.List) error
	walk = func(list stmt.List) error {
		for _, s := range list {
			switch n := s.(type) {
			case *stmt.Assign:
				if n.Domain != CombDomain {
					if _, ok := f.Domains[n.Domain]; !ok {
						return fmt.Errorf("fragment.CheckInvariants: assign to domain %q: %w", n.Domain, ErrUnknownDomain)
					}
				}
				signals, err := value.LHSSignals(n.LHS)
				if err != nil {
					return fmt.Errorf("fragment.CheckInvariants: %w", err)
				}
				for _, sig := range signals {
					assigned[sig.ID] = true
				}
			case *stmt.Switch:
				for _, c := range n.Cases {
					if err := walk(c.Body); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	if err := walk(f.Statements); err != nil {
		return err
	}

	for _, domainName := range f.domainOrder {
		for _, id := range f.drivers[domainName].signals() {
			if !assigned[id] {
				return fmt.Errorf("fragment.CheckInvariants: signal %d: %w", id, ErrUndrivenSignal)
			}
		}
	}
	return nil
}

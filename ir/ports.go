package ir

import (
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// PropagatePorts registers the In/Out ports every subfragment needs
// (spec §4.6 step 4, §4.7.8), comparing each fragment against its
// immediate subfragments: a signal a child reads but does not itself
// drive becomes an In port; a signal a child drives that its parent
// reads becomes an Out port.
//
// This compares only parent against immediate child, not across
// cousins several levels apart; see DESIGN.md "Open Question
// resolutions" for the scoping rationale.
func PropagatePorts(root *fragment.Fragment) error {
	return propagatePortsOne(root)
}

func propagatePortsOne(f *fragment.Fragment) error {
	for _, sub := range f.Subfragments {
		if err := propagatePortsOne(sub.Frag); err != nil {
			return err
		}
	}

	parentUsed := map[value.SignalID]*value.Signal{}
	collectUsed(f.Statements, parentUsed)
	parentDriven := drivenSignals(f)

	for _, sub := range f.Subfragments {
		child := sub.Frag
		childUsed := map[value.SignalID]*value.Signal{}
		collectUsed(child.Statements, childUsed)
		childDriven := drivenSignals(child)

		for id, sig := range childUsed {
			if _, ok := childDriven[id]; ok {
				continue
			}
			if err := child.Ports.Add(sig, fragment.In); err != nil {
				return err
			}
			if _, ok := parentDriven[id]; !ok {
				parentUsed[id] = sig
			}
		}
		for id, sig := range childDriven {
			if _, ok := parentUsed[id]; ok {
				if err := child.Ports.Add(sig, fragment.Out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func drivenSignals(f *fragment.Fragment) map[value.SignalID]*value.Signal {
	out := map[value.SignalID]*value.Signal{}
	for _, domainName := range f.DriverDomains() {
		for _, id := range f.DrivenSignals(domainName) {
			if sig, ok := f.Signal(id); ok {
				out[id] = sig
			}
		}
	}
	return out
}

func collectUsed(list stmt.List, out map[value.SignalID]*value.Signal) {
	for _, s := range list {
		switch n := s.(type) {
		case *stmt.Assign:
			for _, sig := range value.RHSSignals(n.RHS) {
				out[sig.ID] = sig
			}
		case *stmt.Switch:
			for _, sig := range value.RHSSignals(n.Test) {
				out[sig.ID] = sig
			}
			for _, c := range n.Cases {
				collectUsed(c.Body, out)
			}
		case *stmt.Property:
			for _, sig := range value.RHSSignals(n.Test) {
				out[sig.ID] = sig
			}
			if n.Enable != nil {
				for _, sig := range value.RHSSignals(n.Enable) {
					out[sig.ID] = sig
				}
			}
		}
	}
}

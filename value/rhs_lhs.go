package value

import "fmt"

// RHSSignals returns the transitive set of Signals read by v, in
// first-encountered order (spec §4.2). Duplicate signals are collapsed;
// order is otherwise deterministic and depends only on v's structure,
// never on map iteration (spec §9 "Determinism under iteration").
func RHSSignals(v Value) []*Signal {
	var order []*Signal
	seen := map[SignalID]bool{}
	walkRHS(v, &order, seen)
	return order
}

func walkRHS(v Value, order *[]*Signal, seen map[SignalID]bool) {
	switch n := v.(type) {
	case nil, *Const, *AnyValue, *ClockSignal, *ResetSignal, *Initial:
		return
	case *Signal:
		if !seen[n.ID] {
			seen[n.ID] = true
			*order = append(*order, n)
		}
	case *Operator:
		for _, o := range n.Operands {
			walkRHS(o, order, seen)
		}
	case *Slice:
		walkRHS(n.Value, order, seen)
	case *Part:
		walkRHS(n.Value, order, seen)
		walkRHS(n.Offset, order, seen)
	case *Cat:
		for _, p := range n.Parts {
			walkRHS(p, order, seen)
		}
	case *ArrayProxy:
		for _, e := range n.Elems {
			walkRHS(e, order, seen)
		}
		walkRHS(n.Index, order, seen)
	case *Sample:
		walkRHS(n.Value, order, seen)
	}
}

// LHSSignals returns the set of Signals written when v appears on the
// left-hand side of an assignment (spec §4.2). Only Signals and
// compositions thereof through Slice/Cat/Part/transparent-unary satisfy
// this; anything else is ErrBadLHS.
func LHSSignals(v Value) ([]*Signal, error) {
	var order []*Signal
	seen := map[SignalID]bool{}
	if err := walkLHS(v, &order, seen); err != nil {
		return nil, err
	}
	return order, nil
}

func walkLHS(v Value, order *[]*Signal, seen map[SignalID]bool) error {
	switch n := v.(type) {
	case *Signal:
		if !seen[n.ID] {
			seen[n.ID] = true
			*order = append(*order, n)
		}
		return nil
	case *Slice:
		return walkLHS(n.Value, order, seen)
	case *Part:
		return walkLHS(n.Value, order, seen)
	case *Cat:
		for _, p := range n.Parts {
			if err := walkLHS(p, order, seen); err != nil {
				return err
			}
		}
		return nil
	case *Operator:
		if !n.Op.IsCast() {
			return fmt.Errorf("value.LHSSignals: operator %q is not a legal LHS: %w", n.Op, ErrBadLHS)
		}
		return walkLHS(n.Operands[0], order, seen)
	default:
		return fmt.Errorf("value.LHSSignals: %w", ErrBadLHS)
	}
}

package xfrm

import "github.com/shrine-maiden-heavy-industries/torii-go/stmt"

// StatementMapper rewrites a stmt.List one statement at a time. If
// Values is non-nil, every value appearing in a statement (Assign's LHS/
// RHS, Switch's Test, Property's Test/Enable) is first rewritten through
// it. After value substitution, the matching On* hook (if set) gets a
// chance to replace or drop the statement outright; returning nil drops
// it, matching how EnableInserter/ResetInserter splice in or remove
// guard statements (spec §4.6 step 4).
type StatementMapper struct {
	Values     *ValueMapper
	OnAssign   func(a *stmt.Assign) stmt.Statement
	OnSwitch   func(s *stmt.Switch) stmt.Statement
	OnProperty func(p *stmt.Property) stmt.Statement
}

// MapStatements rewrites every statement in list, recursing into Switch
// case bodies first (bottom-up, matching ValueMapper's own ordering).
func (m *StatementMapper) MapStatements(list stmt.List) stmt.List {
	out := make(stmt.List, 0, len(list))
	for _, s := range list {
		if rewritten := m.mapOne(s); rewritten != nil {
			out = append(out, rewritten)
		}
	}
	return out
}

func (m *StatementMapper) mapOne(s stmt.Statement) stmt.Statement {
	switch n := s.(type) {
	case *stmt.Assign:
		lhs, rhs := n.LHS, n.RHS
		if m.Values != nil {
			lhs = m.Values.MapValue(n.LHS)
			rhs = m.Values.MapValue(n.RHS)
		}
		rewritten := &stmt.Assign{LHS: lhs, RHS: rhs, Domain: n.Domain, SrcLoc: n.SrcLoc}
		if m.OnAssign != nil {
			return m.OnAssign(rewritten)
		}
		return rewritten
	case *stmt.Switch:
		test := n.Test
		if m.Values != nil {
			test = m.Values.MapValue(n.Test)
		}
		cases := make([]stmt.Case, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = stmt.Case{Patterns: c.Patterns, Body: m.MapStatements(c.Body)}
		}
		rewritten := &stmt.Switch{Test: test, Cases: cases, SrcLoc: n.SrcLoc}
		if m.OnSwitch != nil {
			return m.OnSwitch(rewritten)
		}
		return rewritten
	case *stmt.Property:
		test, enable := n.Test, n.Enable
		if m.Values != nil {
			test = m.Values.MapValue(n.Test)
			enable = m.Values.MapValue(n.Enable)
		}
		rewritten := &stmt.Property{Kind: n.Kind, Test: test, Enable: enable, Name: n.Name, SrcLoc: n.SrcLoc}
		if m.OnProperty != nil {
			return m.OnProperty(rewritten)
		}
		return rewritten
	default:
		return s
	}
}

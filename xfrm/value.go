package xfrm

import "github.com/shrine-maiden-heavy-industries/torii-go/value"

// ValueMapper rewrites a value.Value tree one node kind at a time. Every
// hook is optional; a nil hook means "leave this node kind as-is" for
// leaves, or "recurse into children, then rebuild" for composite nodes.
// Hooks run bottom-up: children are mapped before a composite node's own
// hook (if any) runs, and that hook receives the original node together
// with its already-mapped children, matching Sample/ClockSignal/
// ResetSignal lowering's need to substitute children first (spec §4.6
// steps 1 and 3).
type ValueMapper struct {
	OnSignal      func(s *value.Signal) value.Value
	OnConst       func(c *value.Const) value.Value
	OnAnyValue    func(a *value.AnyValue) value.Value
	OnClockSignal func(c *value.ClockSignal) value.Value
	OnResetSignal func(r *value.ResetSignal) value.Value
	OnInitial     func(i *value.Initial) value.Value
	OnSample      func(s *value.Sample, inner value.Value) value.Value
	OnOperator    func(o *value.Operator, operands []value.Value) value.Value
	OnSlice       func(s *value.Slice, inner value.Value) value.Value
	OnPart        func(p *value.Part, inner, offset value.Value) value.Value
	OnCat         func(c *value.Cat, parts []value.Value) value.Value
	OnArrayProxy  func(a *value.ArrayProxy, elems []value.Value, index value.Value) value.Value
}

// MapValue rewrites v according to m, recursing into every composite
// node. A nil v maps to nil.
func (m *ValueMapper) MapValue(v value.Value) value.Value {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case *value.Signal:
		if m.OnSignal != nil {
			return m.OnSignal(n)
		}
		return n
	case *value.Const:
		if m.OnConst != nil {
			return m.OnConst(n)
		}
		return n
	case *value.AnyValue:
		if m.OnAnyValue != nil {
			return m.OnAnyValue(n)
		}
		return n
	case *value.ClockSignal:
		if m.OnClockSignal != nil {
			return m.OnClockSignal(n)
		}
		return n
	case *value.ResetSignal:
		if m.OnResetSignal != nil {
			return m.OnResetSignal(n)
		}
		return n
	case *value.Initial:
		if m.OnInitial != nil {
			return m.OnInitial(n)
		}
		return n
	case *value.Sample:
		inner := m.MapValue(n.Value)
		if m.OnSample != nil {
			return m.OnSample(n, inner)
		}
		if inner == n.Value {
			return n
		}
		rebuilt, err := value.NewSample(inner, n.Cycles, n.Domain)
		if err != nil {
			panic(err)
		}
		return rebuilt
	case *value.Operator:
		operands := make([]value.Value, len(n.Operands))
		changed := false
		for i, o := range n.Operands {
			operands[i] = m.MapValue(o)
			if operands[i] != o {
				changed = true
			}
		}
		if m.OnOperator != nil {
			return m.OnOperator(n, operands)
		}
		if !changed {
			return n
		}
		rebuilt, err := value.NewOperator(n.Op, operands...)
		if err != nil {
			panic(err)
		}
		return rebuilt
	case *value.Slice:
		inner := m.MapValue(n.Value)
		if m.OnSlice != nil {
			return m.OnSlice(n, inner)
		}
		if inner == n.Value {
			return n
		}
		rebuilt, err := value.NewSlice(inner, n.Start, n.Stop)
		if err != nil {
			panic(err)
		}
		return rebuilt
	case *value.Part:
		inner := m.MapValue(n.Value)
		offset := m.MapValue(n.Offset)
		if m.OnPart != nil {
			return m.OnPart(n, inner, offset)
		}
		if inner == n.Value && offset == n.Offset {
			return n
		}
		rebuilt, err := value.NewPart(inner, offset, n.Width, n.Stride)
		if err != nil {
			panic(err)
		}
		return rebuilt
	case *value.Cat:
		parts := make([]value.Value, len(n.Parts))
		changed := false
		for i, p := range n.Parts {
			parts[i] = m.MapValue(p)
			if parts[i] != p {
				changed = true
			}
		}
		if m.OnCat != nil {
			return m.OnCat(n, parts)
		}
		if !changed {
			return n
		}
		rebuilt, err := value.NewCat(parts...)
		if err != nil {
			panic(err)
		}
		return rebuilt
	case *value.ArrayProxy:
		elems := make([]value.Value, len(n.Elems))
		changed := false
		for i, e := range n.Elems {
			elems[i] = m.MapValue(e)
			if elems[i] != e {
				changed = true
			}
		}
		index := m.MapValue(n.Index)
		if index != n.Index {
			changed = true
		}
		if m.OnArrayProxy != nil {
			return m.OnArrayProxy(n, elems, index)
		}
		if !changed {
			return n
		}
		rebuilt, err := value.NewArrayProxy(elems, index)
		if err != nil {
			panic(err)
		}
		return rebuilt
	default:
		return n
	}
}

package ir

import (
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
	"github.com/shrine-maiden-heavy-industries/torii-go/xfrm"
)

// LowerSamples replaces every Sample node found anywhere in root's
// statement tree, and that of every subfragment, with a chain of newly
// allocated registers sampled in Sample's own Domain (spec §4.6 step 1,
// spec §3 "Sample never reaches the RTLIL emitter"). It must run before
// PropagateDomains/LowerDomains, since the inserted registers' Domain is
// still a bare name at this point.
func LowerSamples(arena *value.Arena, root *fragment.Fragment) error {
	return lowerSamplesOne(arena, root)
}

func lowerSamplesOne(arena *value.Arena, f *fragment.Fragment) error {
	var pending stmt.List
	var firstErr error

	vm := &xfrm.ValueMapper{
		OnSample: func(s *value.Sample, inner value.Value) value.Value {
			sh := value.ShapeOf(inner)
			cur := inner
			for i := 0; i < s.Cycles; i++ {
				reg := value.NewSignal(arena, sh)
				assign, err := stmt.NewAssign(reg, cur, s.Domain)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return s
				}
				if err := f.AddDriver(reg, s.Domain); err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return s
				}
				pending = append(pending, assign)
				cur = reg
			}
			return cur
		},
	}

	sm := &xfrm.StatementMapper{Values: vm}
	f.Statements = sm.MapStatements(f.Statements)
	if firstErr != nil {
		return firstErr
	}
	f.Statements = append(f.Statements, pending...)

	for _, sub := range f.Subfragments {
		if err := lowerSamplesOne(arena, sub.Frag); err != nil {
			return err
		}
	}
	return nil
}

package xfrm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
	"github.com/shrine-maiden-heavy-industries/torii-go/xfrm"
)

func TestMapValueSubstitutesSignal(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("a"))
	b := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("b"))
	sum := value.NewBinary(value.OpAdd, a, b)

	m := &xfrm.ValueMapper{
		OnSignal: func(s *value.Signal) value.Value {
			if s == a {
				return value.NewConstInt(3, 4)
			}
			return s
		},
	}
	got := m.MapValue(sum)
	op, ok := got.(*value.Operator)
	require.True(t, ok)
	c, ok := op.Operands[0].(*value.Const)
	require.True(t, ok)
	require.Equal(t, int64(3), c.Val.Int64())
	require.Same(t, b, op.Operands[1])
}

func TestMapValueLeavesUnchangedNodeIdentical(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(4))
	sum := value.NewBinary(value.OpAdd, a, b)

	m := &xfrm.ValueMapper{}
	got := m.MapValue(sum)
	require.Same(t, sum, got)
}

func TestMapValueLowersSample(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(4))
	sample, err := value.NewSample(sig, 1, "sync")
	require.NoError(t, err)

	delayed := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("delayed"))
	m := &xfrm.ValueMapper{
		OnSample: func(s *value.Sample, inner value.Value) value.Value {
			return delayed
		},
	}
	got := m.MapValue(sample)
	require.Same(t, delayed, got)
}

func TestMapStatementsDropsAssign(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1))
	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 1), "")
	require.NoError(t, err)

	sm := &xfrm.StatementMapper{
		OnAssign: func(a *stmt.Assign) stmt.Statement { return nil },
	}
	out := sm.MapStatements(stmt.List{assign})
	require.Empty(t, out)
}

func TestMapStatementsRecursesIntoSwitchCases(t *testing.T) {
	arena := value.NewArena()
	test := value.NewSignal(arena, shape.MustUnsigned(1))
	sig := value.NewSignal(arena, shape.MustUnsigned(1))
	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 1), "")
	require.NoError(t, err)

	sw, err := stmt.NewSwitch(test, []stmt.Case{
		{Patterns: []stmt.Pattern{"1"}, Body: stmt.List{assign}},
	})
	require.NoError(t, err)

	seen := 0
	sm := &xfrm.StatementMapper{
		OnAssign: func(a *stmt.Assign) stmt.Statement {
			seen++
			return a
		},
	}
	out := sm.MapStatements(stmt.List{sw})
	require.Len(t, out, 1)
	require.Equal(t, 1, seen)
}

func TestMapFragmentRecursesSubfragments(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1))
	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 1), "")
	require.NoError(t, err)

	child := fragment.New()
	require.NoError(t, child.AddStatement(assign))

	parent := fragment.New()
	require.NoError(t, parent.AddSubfragment(child, "child"))

	seen := 0
	sm := &xfrm.StatementMapper{
		OnAssign: func(a *stmt.Assign) stmt.Statement {
			seen++
			return a
		},
	}
	xfrm.MapFragment(parent, sm, true)
	require.Equal(t, 1, seen)
}

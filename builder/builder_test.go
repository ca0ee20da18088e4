package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/builder"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func newSig(arena *value.Arena, name string, width int) *value.Signal {
	return value.NewSignal(arena, shape.MustUnsigned(width), value.WithName(name))
}

func TestAssignRequiresDomain(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	a := newSig(arena, "a", 1)
	b := newSig(arena, "b", 1)

	err := m.Assign(a, b)
	require.ErrorIs(t, err, builder.ErrDomainRequired)

	m.Comb()
	require.NoError(t, m.Assign(a, b))
}

func TestIfElseLowersToNestedSwitch(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	cond := newSig(arena, "cond", 1)
	a := newSig(arena, "a", 4)
	b := newSig(arena, "b", 4)
	out := newSig(arena, "out", 4)

	m.Comb()
	require.NoError(t, m.If(cond))
	require.NoError(t, m.Assign(out, a))
	require.NoError(t, m.Else())
	require.NoError(t, m.Assign(out, b))
	require.NoError(t, m.EndIf())
	require.Equal(t, 0, m.Depth())

	f := m.Fragment()
	require.Len(t, f.Statements, 1)
	sw, ok := f.Statements[0].(*stmt.Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.Equal(t, []stmt.Pattern{"1"}, sw.Cases[0].Patterns)
	require.Len(t, sw.Cases[0].Body, 1)
	require.Empty(t, sw.Cases[1].Patterns)
	require.Len(t, sw.Cases[1].Body, 1)
}

func TestIfElifElseNestsOneSwitchPerCondition(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	c1 := newSig(arena, "c1", 1)
	c2 := newSig(arena, "c2", 1)
	a := newSig(arena, "a", 4)
	b := newSig(arena, "b", 4)
	c := newSig(arena, "c", 4)
	out := newSig(arena, "out", 4)

	m.Comb()
	require.NoError(t, m.If(c1))
	require.NoError(t, m.Assign(out, a))
	require.NoError(t, m.Elif(c2))
	require.NoError(t, m.Assign(out, b))
	require.NoError(t, m.Else())
	require.NoError(t, m.Assign(out, c))
	require.NoError(t, m.EndIf())

	f := m.Fragment()
	outer, ok := f.Statements[0].(*stmt.Switch)
	require.True(t, ok)
	require.Same(t, c1, outer.Test.(*value.Signal))
	require.Len(t, outer.Cases, 2)

	// The second (default) case of the outer switch holds exactly one
	// nested Switch testing c2, not a second case of the outer Test.
	require.Empty(t, outer.Cases[1].Patterns)
	require.Len(t, outer.Cases[1].Body, 1)
	inner, ok := outer.Cases[1].Body[0].(*stmt.Switch)
	require.True(t, ok)
	require.Same(t, c2, inner.Test.(*value.Signal))
	require.Len(t, inner.Cases, 2)
	require.Empty(t, inner.Cases[1].Patterns)
}

func TestElifWithoutIfErrors(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	cond := newSig(arena, "cond", 1)

	err := m.Elif(cond)
	require.ErrorIs(t, err, builder.ErrElifElseWithoutIf)

	err = m.Else()
	require.ErrorIs(t, err, builder.ErrElifElseWithoutIf)
}

func TestSwitchCaseDefault(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	sel := newSig(arena, "sel", 2)
	out := newSig(arena, "out", 4)
	zero := value.NewConstInt(0, 4)
	one := value.NewConstInt(1, 4)
	two := value.NewConstInt(2, 4)

	m.Comb()
	require.NoError(t, m.Switch(sel))
	require.NoError(t, m.Case("00"))
	require.NoError(t, m.Assign(out, zero))
	require.NoError(t, m.Case("01", "10"))
	require.NoError(t, m.Assign(out, one))
	require.NoError(t, m.Default())
	require.NoError(t, m.Assign(out, two))
	require.NoError(t, m.EndSwitch())

	f := m.Fragment()
	sw, ok := f.Statements[0].(*stmt.Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 3)
	require.Equal(t, []stmt.Pattern{"00"}, sw.Cases[0].Patterns)
	require.Equal(t, []stmt.Pattern{"01", "10"}, sw.Cases[1].Patterns)
	require.Empty(t, sw.Cases[2].Patterns)
}

func TestCaseOutsideSwitchErrors(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	err := m.Case("0")
	require.ErrorIs(t, err, builder.ErrCaseOutsideSwitch)
}

func TestCaseWidthMismatchErrors(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	sel := newSig(arena, "sel", 2)
	require.NoError(t, m.Switch(sel))
	err := m.Case("1")
	require.ErrorIs(t, err, stmt.ErrBadPattern)
}

func TestEndIfOnSwitchFrameErrors(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	sel := newSig(arena, "sel", 1)
	require.NoError(t, m.Switch(sel))
	err := m.EndIf()
	require.ErrorIs(t, err, builder.ErrUnbalancedStack)
}

func TestCloseWithNothingOpenErrors(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	err := m.Close()
	require.ErrorIs(t, err, builder.ErrUnbalancedStack)
}

func TestFSMBasicTransitionsAndOngoing(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	start := newSig(arena, "start", 1)

	m.Sync()
	h, err := m.FSM("ctr", builder.SyncDomain, []string{"IDLE", "RUN", "DONE"})
	require.NoError(t, err)

	require.NoError(t, m.State("IDLE"))
	m.Comb()
	require.NoError(t, m.If(start))
	require.NoError(t, m.Next("RUN"))
	require.NoError(t, m.EndIf())

	require.NoError(t, m.State("RUN"))
	require.NoError(t, m.Next("DONE"))

	require.NoError(t, m.State("DONE"))

	require.NoError(t, m.EndFSM())
	require.Equal(t, 0, m.Depth())

	running, err := h.Ongoing("RUN")
	require.NoError(t, err)
	require.NotNil(t, running)

	_, err = h.Ongoing("NOPE")
	require.ErrorIs(t, err, builder.ErrUnknownState)

	f := m.Fragment()
	// Switch over state, plus the synchronous state<=next assignment.
	require.Len(t, f.Statements, 2)
	sw, ok := f.Statements[0].(*stmt.Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 3)

	regAssign, ok := f.Statements[1].(*stmt.Assign)
	require.True(t, ok)
	require.Equal(t, builder.SyncDomain, regAssign.Domain)

	stateDomain, ok := f.DomainOf(sw.Test.(*value.Signal).ID)
	require.True(t, ok)
	require.Equal(t, builder.SyncDomain, stateDomain)
}

func TestFSMUnknownAndDuplicateState(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	m.Sync()
	_, err := m.FSM("ctr", builder.SyncDomain, []string{"A", "B"})
	require.NoError(t, err)

	err = m.State("NOPE")
	require.ErrorIs(t, err, builder.ErrUnknownState)

	require.NoError(t, m.State("A"))
	require.NoError(t, m.State("B"))
	err = m.State("A")
	require.ErrorIs(t, err, builder.ErrDuplicateState)
}

func TestNextOutsideStateErrors(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	err := m.Next("RUN")
	require.ErrorIs(t, err, builder.ErrNextOutsideState)
}

func TestSubmoduleAttachesChild(t *testing.T) {
	arena := value.NewArena()
	m := builder.New(arena)
	child := fragment.New()
	require.NoError(t, m.Submodule(child, "adder"))
	require.Len(t, m.Fragment().Subfragments, 1)
}

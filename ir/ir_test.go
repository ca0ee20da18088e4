package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/ir"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestLowerSamplesInsertsRegisterChain(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("a"))
	out := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("out"))

	sample, err := value.NewSample(a, 2, "sync")
	require.NoError(t, err)
	assign, err := stmt.NewAssign(out, sample, "")
	require.NoError(t, err)

	f := fragment.New()
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(out, fragment.CombDomain))

	require.NoError(t, ir.LowerSamples(arena, f))

	// The original Assign survives with its RHS rewritten to a Signal,
	// and two new register-chain Assigns were appended.
	require.Len(t, f.Statements, 3)
	rewritten, ok := f.Statements[0].(*stmt.Assign)
	require.True(t, ok)
	_, isSignal := rewritten.RHS.(*value.Signal)
	require.True(t, isSignal)

	for _, s := range f.Statements[1:] {
		regAssign, ok := s.(*stmt.Assign)
		require.True(t, ok)
		require.Equal(t, "sync", regAssign.Domain)
	}
}

func TestPropagateAndLowerDomains(t *testing.T) {
	arena := value.NewArena()
	d, err := domain.New(arena, "sync")
	require.NoError(t, err)

	child := fragment.New()
	child.AddDomain(d)
	sig := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("q"))
	clk := value.NewClockSignal("sync")
	assign, err := stmt.NewAssign(sig, clk, "sync")
	require.NoError(t, err)
	require.NoError(t, child.AddStatement(assign))
	require.NoError(t, child.AddDriver(sig, "sync"))

	root := fragment.New()
	require.NoError(t, root.AddSubfragment(child, "child"))

	table, err := ir.PropagateDomains(root)
	require.NoError(t, err)
	require.Same(t, d, table["sync"])
	require.Same(t, d, root.Domains["sync"])

	require.NoError(t, ir.LowerDomains(root, table))
	rewritten := child.Statements[0].(*stmt.Assign)
	require.Same(t, d.Clock, rewritten.RHS)
}

func TestPropagateDomainsDetectsConflict(t *testing.T) {
	arena := value.NewArena()
	d1, err := domain.New(arena, "sync")
	require.NoError(t, err)
	d2, err := domain.New(arena, "sync")
	require.NoError(t, err)

	c1, c2 := fragment.New(), fragment.New()
	c1.AddDomain(d1)
	c2.AddDomain(d2)

	root := fragment.New()
	require.NoError(t, root.AddSubfragment(c1, "c1"))
	require.NoError(t, root.AddSubfragment(c2, "c2"))

	_, err = ir.PropagateDomains(root)
	require.ErrorIs(t, err, ir.ErrDomainConflict)
}

func TestEnableInserterWrapsMatchingDomain(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(4))
	en := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("en"))
	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 4), "sync")
	require.NoError(t, err)

	f := fragment.New()
	require.NoError(t, f.AddStatement(assign))

	require.NoError(t, ir.EnableInserter(f, "sync", en))
	require.Len(t, f.Statements, 1)
	sw, ok := f.Statements[0].(*stmt.Switch)
	require.True(t, ok)
	require.Same(t, en, sw.Test)
	require.Len(t, sw.Cases[0].Body, 1)
}

func TestResetInserterAppendsOverride(t *testing.T) {
	arena := value.NewArena()
	d, err := domain.New(arena, "sync")
	require.NoError(t, err)
	soft := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("soft_rst"))

	sig := value.NewSignal(arena, shape.MustUnsigned(4), value.WithReset(5))
	f := fragment.New()
	f.AddDomain(d)
	require.NoError(t, f.AddDriver(sig, "sync"))

	// ResetInserter takes an arbitrary caller-supplied condition, not
	// necessarily the domain's own reset signal.
	require.NoError(t, ir.ResetInserter(f, "sync", soft))
	require.Len(t, f.Statements, 1)
	sw, ok := f.Statements[0].(*stmt.Switch)
	require.True(t, ok)
	require.Same(t, soft, sw.Test)
}

func TestLowerDomainsInjectsMandatorySyncReset(t *testing.T) {
	arena := value.NewArena()
	d, err := domain.New(arena, "sync")
	require.NoError(t, err)

	sig := value.NewSignal(arena, shape.MustUnsigned(4), value.WithReset(5))
	f := fragment.New()
	f.AddDomain(d)
	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 4), "sync")
	require.NoError(t, err)
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(sig, "sync"))

	table := map[string]*domain.ClockDomain{"sync": d}
	require.NoError(t, ir.LowerDomains(f, table))

	require.Len(t, f.Statements, 2)
	sw, ok := f.Statements[1].(*stmt.Switch)
	require.True(t, ok)
	require.Same(t, d.Reset, sw.Test)
	require.Len(t, sw.Cases[0].Body, 1)
}

func TestLowerDomainsSkipsAsyncAndResetLessDomains(t *testing.T) {
	arena := value.NewArena()
	async, err := domain.New(arena, "async", domain.WithAsyncReset())
	require.NoError(t, err)
	resetless, err := domain.New(arena, "free", domain.WithResetLess())
	require.NoError(t, err)

	for _, d := range []*domain.ClockDomain{async, resetless} {
		sig := value.NewSignal(arena, shape.MustUnsigned(4))
		f := fragment.New()
		f.AddDomain(d)
		assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 4), d.Name)
		require.NoError(t, err)
		require.NoError(t, f.AddStatement(assign))
		require.NoError(t, f.AddDriver(sig, d.Name))

		table := map[string]*domain.ClockDomain{d.Name: d}
		require.NoError(t, ir.LowerDomains(f, table))
		require.Len(t, f.Statements, 1)
	}
}

func TestPropagatePortsAddsInAndOutPorts(t *testing.T) {
	arena := value.NewArena()
	parentIn := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("parent_in"))
	childOut := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("child_out"))

	child := fragment.New()
	childAssign, err := stmt.NewAssign(childOut, parentIn, fragment.CombDomain)
	require.NoError(t, err)
	require.NoError(t, child.AddStatement(childAssign))
	require.NoError(t, child.AddDriver(childOut, fragment.CombDomain))

	root := fragment.New()
	require.NoError(t, root.AddSubfragment(child, "child"))
	rootSink := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("sink"))
	rootAssign, err := stmt.NewAssign(rootSink, childOut, fragment.CombDomain)
	require.NoError(t, err)
	require.NoError(t, root.AddStatement(rootAssign))
	require.NoError(t, root.AddDriver(rootSink, fragment.CombDomain))

	require.NoError(t, ir.PropagatePorts(root))

	dir, ok := child.Ports.Direction(parentIn.ID)
	require.True(t, ok)
	require.Equal(t, fragment.In, dir)

	dir, ok = child.Ports.Direction(childOut.ID)
	require.True(t, ok)
	require.Equal(t, fragment.Out, dir)
}

func TestResolveMissingDomainsSynthesizesDefault(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("q"))
	clk := value.NewClockSignal("sync")
	assign, err := stmt.NewAssign(sig, clk, "sync")
	require.NoError(t, err)

	f := fragment.New()
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(sig, "sync"))

	table := map[string]*domain.ClockDomain{}
	require.NoError(t, ir.ResolveMissingDomains(arena, f, table, nil))
	require.Contains(t, table, "sync")
	require.Same(t, table["sync"], f.Domains["sync"])

	require.NoError(t, ir.LowerDomains(f, table))
	rewritten := f.Statements[0].(*stmt.Assign)
	require.Same(t, table["sync"].Clock, rewritten.RHS)
}

func TestResolveMissingDomainsUsesCustomCallback(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("q"))
	rst := value.NewResetSignal("sync", false)
	assign, err := stmt.NewAssign(sig, rst, "sync")
	require.NoError(t, err)

	f := fragment.New()
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(sig, "sync"))

	called := ""
	custom := func(arena *value.Arena, name string) (*domain.ClockDomain, error) {
		called = name
		return domain.New(arena, name, domain.WithAsyncReset())
	}

	table := map[string]*domain.ClockDomain{}
	require.NoError(t, ir.ResolveMissingDomains(arena, f, table, custom))
	require.Equal(t, "sync", called)
	require.True(t, table["sync"].AsyncReset)
}

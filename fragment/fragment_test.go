package fragment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestAddDriverConflict(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(4))

	f := fragment.New()
	require.NoError(t, f.AddDriver(sig, fragment.CombDomain))
	err := f.AddDriver(sig, "sync")
	require.ErrorIs(t, err, fragment.ErrDriverConflict)
}

func TestAddDriverIdempotentSameDomain(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(4))

	f := fragment.New()
	require.NoError(t, f.AddDriver(sig, "sync"))
	require.NoError(t, f.AddDriver(sig, "sync"))
	require.Equal(t, []value.SignalID{sig.ID}, f.DrivenSignals("sync"))
}

func TestAddSubfragmentDuplicateName(t *testing.T) {
	f := fragment.New()
	child1 := fragment.New()
	child2 := fragment.New()

	require.NoError(t, f.AddSubfragment(child1, "adder"))
	err := f.AddSubfragment(child2, "adder")
	require.ErrorIs(t, err, fragment.ErrDuplicateSubfragmentName)

	require.NoError(t, f.AddSubfragment(child2, ""))
	require.NoError(t, f.AddSubfragment(fragment.New(), ""))
}

func TestPortSetDirectionMismatch(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1))

	ports := fragment.New().Ports
	require.NoError(t, ports.Add(sig, fragment.In))
	require.NoError(t, ports.Add(sig, fragment.In))
	require.Error(t, ports.Add(sig, fragment.Out))
}

func TestCheckInvariantsDetectsUndriven(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1))
	other := value.NewSignal(arena, shape.MustUnsigned(1))

	f := fragment.New()
	require.NoError(t, f.AddDriver(sig, fragment.CombDomain))
	assign, err := stmt.NewAssign(other, value.NewConstInt(0, 1), fragment.CombDomain)
	require.NoError(t, err)
	require.NoError(t, f.AddStatement(assign))

	err = f.CheckInvariants()
	require.ErrorIs(t, err, fragment.ErrUndrivenSignal)
}

func TestCheckInvariantsDetectsUnknownDomain(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1))

	f := fragment.New()
	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 1), "sync")
	require.NoError(t, err)
	require.NoError(t, f.AddStatement(assign))

	err = f.CheckInvariants()
	require.ErrorIs(t, err, fragment.ErrUnknownDomain)
}

func TestCheckInvariantsPasses(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(1))

	f := fragment.New()
	d, err := domain.New(arena, "sync")
	require.NoError(t, err)
	f.AddDomain(d)

	assign, err := stmt.NewAssign(sig, value.NewConstInt(1, 1), "sync")
	require.NoError(t, err)
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(sig, "sync"))

	require.NoError(t, f.CheckInvariants())
}

func TestNewMemoryFragment(t *testing.T) {
	mem := &fragment.MemoryInfo{Name: "mem", Depth: 16, Width: 8}
	f := fragment.NewMemory(mem)
	require.Equal(t, fragment.KindMemory, f.Kind)
	require.Same(t, mem, f.Memory)
}

func TestNewInstanceFragment(t *testing.T) {
	f := fragment.NewInstance("$add")
	require.Equal(t, fragment.KindInstance, f.Kind)
	require.Equal(t, "$add", f.CellType)
	require.NotNil(t, f.Parameters)
	require.NotNil(t, f.NamedPorts)
}

package rtlil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/rtlil"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestConvertCombinationalAnd(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("a"))
	b := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("b"))
	out := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("out"))

	and := value.NewBinary(value.OpAnd, a, b)
	assign, err := stmt.NewAssign(out, and, fragment.CombDomain)
	require.NoError(t, err)

	f := fragment.New()
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(out, fragment.CombDomain))
	require.NoError(t, f.Ports.Add(a, fragment.In))
	require.NoError(t, f.Ports.Add(b, fragment.In))
	require.NoError(t, f.Ports.Add(out, fragment.Out))

	text, err := rtlil.Convert(arena, f, rtlil.WithTopName("top"))
	require.NoError(t, err)
	require.Contains(t, text, "module \\top")
	require.Contains(t, text, "attribute \\top 1")
	require.Contains(t, text, "$and")
	require.Contains(t, text, "wire width 4 input")
	require.Contains(t, text, "wire width 4 output")
	require.Contains(t, text, "end\n")
}

func TestConvertSyncDFF(t *testing.T) {
	arena := value.NewArena()
	sync, err := domain.New(arena, "sync")
	require.NoError(t, err)

	d := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("d"))
	q := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("q"))

	assign, err := stmt.NewAssign(q, d, "sync")
	require.NoError(t, err)

	f := fragment.New()
	f.AddDomain(sync)
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(q, "sync"))
	require.NoError(t, f.Ports.Add(d, fragment.In))
	require.NoError(t, f.Ports.Add(q, fragment.Out))

	text, err := rtlil.Convert(arena, f)
	require.NoError(t, err)
	require.Contains(t, text, "$dff")
	require.Contains(t, text, "\\D")
	require.Contains(t, text, "\\Q")
	require.Contains(t, text, "\\CLK")
}

func TestConvertAsyncResetADFF(t *testing.T) {
	arena := value.NewArena()
	sync, err := domain.New(arena, "sync", domain.WithAsyncReset())
	require.NoError(t, err)

	d := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("d"))
	q := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("q"))

	assign, err := stmt.NewAssign(q, d, "sync")
	require.NoError(t, err)

	f := fragment.New()
	f.AddDomain(sync)
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(q, "sync"))
	require.NoError(t, f.Ports.Add(d, fragment.In))
	require.NoError(t, f.Ports.Add(q, fragment.Out))

	text, err := rtlil.Convert(arena, f)
	require.NoError(t, err)
	require.Contains(t, text, "$adff")
	require.Contains(t, text, "\\ARST")
}

func TestConvertPropertyEmitsAssertCell(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(1), value.WithName("a"))

	prop, err := stmt.NewProperty(stmt.Assert, a, nil, "never_low")
	require.NoError(t, err)

	f := fragment.New()
	require.NoError(t, f.AddStatement(prop))
	require.NoError(t, f.Ports.Add(a, fragment.In))

	text, err := rtlil.Convert(arena, f)
	require.NoError(t, err)
	require.Contains(t, text, "$assert")
	require.True(t, strings.Contains(text, "never_low"))

	// Cells may never appear nested inside a process's case/switch text.
	if idx := strings.Index(text, "process"); idx >= 0 {
		procEnd := strings.Index(text[idx:], "\n  end\n")
		require.True(t, procEnd >= 0)
		require.NotContains(t, text[idx:idx+procEnd], "cell $assert")
	}
}

func TestConvertUndrivenSignalConnectsToReset(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("unused"), value.WithReset(7))

	f := fragment.New()
	// sig is read here but never driven by this fragment, so the
	// module must wire its "current" wire straight to its reset value.
	other := value.NewSignal(arena, shape.MustUnsigned(4), value.WithName("out"))
	assign, err := stmt.NewAssign(other, sig, fragment.CombDomain)
	require.NoError(t, err)
	require.NoError(t, f.AddStatement(assign))
	require.NoError(t, f.AddDriver(other, fragment.CombDomain))

	text, err := rtlil.Convert(arena, f)
	require.NoError(t, err)
	require.Contains(t, text, "connect")
}

package stmt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestNewAssignRejectsBadLHS(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(4))
	sum := value.NewBinary(value.OpAdd, a, b)

	_, err := stmt.NewAssign(sum, a, "")
	require.ErrorIs(t, err, value.ErrBadLHS)
}

func TestNewSwitchValidatesPatternWidth(t *testing.T) {
	arena := value.NewArena()
	test := value.NewSignal(arena, shape.MustUnsigned(3))

	_, err := stmt.NewSwitch(test, []stmt.Case{
		{Patterns: []stmt.Pattern{"--1"}},
	})
	require.NoError(t, err)

	_, err = stmt.NewSwitch(test, []stmt.Case{
		{Patterns: []stmt.Pattern{"--12"}},
	})
	require.ErrorIs(t, err, stmt.ErrBadPattern)

	_, err = stmt.NewSwitch(test, []stmt.Case{
		{Patterns: []stmt.Pattern{"-x1"}},
	})
	require.ErrorIs(t, err, stmt.ErrBadPattern)
}

func TestSwitchPreservesCaseOrder(t *testing.T) {
	arena := value.NewArena()
	test := value.NewSignal(arena, shape.MustUnsigned(3))
	sw, err := stmt.NewSwitch(test, []stmt.Case{
		{Patterns: []stmt.Pattern{"--1"}}, // first
		{Patterns: []stmt.Pattern{"-1-"}}, // second
		{Patterns: []stmt.Pattern{"1--"}}, // third
	})
	require.NoError(t, err)
	require.Equal(t, stmt.Pattern("--1"), sw.Cases[0].Patterns[0])
	require.Equal(t, stmt.Pattern("-1-"), sw.Cases[1].Patterns[0])
	require.Equal(t, stmt.Pattern("1--"), sw.Cases[2].Patterns[0])
}

func TestPatternMatches(t *testing.T) {
	require.True(t, stmt.Pattern("--1").Matches("001"))
	require.True(t, stmt.Pattern("--1").Matches("111"))
	require.False(t, stmt.Pattern("--1").Matches("110"))
}

func TestPropertyKindString(t *testing.T) {
	require.Equal(t, "assert", stmt.Assert.String())
	require.Equal(t, "cover", stmt.Cover.String())
}

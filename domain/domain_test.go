package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/domain"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestNewDomainDefaults(t *testing.T) {
	arena := value.NewArena()
	d, err := domain.New(arena, "sync")
	require.NoError(t, err)
	require.Equal(t, "sync", d.Name)
	require.NotNil(t, d.Clock)
	require.NotNil(t, d.Reset)
	require.False(t, d.AsyncReset)
	require.False(t, d.ResetLess)
	require.Equal(t, domain.Pos, d.ClockEdge)
}

func TestNewDomainResetLess(t *testing.T) {
	arena := value.NewArena()
	d, err := domain.New(arena, "sync", domain.WithResetLess())
	require.NoError(t, err)
	require.Nil(t, d.Reset)

	_, err = d.ResetValue(false)
	require.ErrorIs(t, err, domain.ErrResetLessWithReset)

	sig, err := d.ResetValue(true)
	require.NoError(t, err)
	require.Nil(t, sig)
}

func TestNewDomainAsyncAndEdge(t *testing.T) {
	arena := value.NewArena()
	d, err := domain.New(arena, "por", domain.WithAsyncReset(), domain.WithClockEdge(domain.Neg), domain.WithLocal())
	require.NoError(t, err)
	require.True(t, d.AsyncReset)
	require.Equal(t, domain.Neg, d.ClockEdge)
	require.True(t, d.Local)
}

func TestNewDomainRejectsEmptyName(t *testing.T) {
	arena := value.NewArena()
	_, err := domain.New(arena, "")
	require.ErrorIs(t, err, domain.ErrEmptyName)
}

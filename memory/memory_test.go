package memory_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/memory"
	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	arena := value.NewArena()
	_, err := memory.New(arena, "m", 0, 8)
	require.ErrorIs(t, err, memory.ErrBadDepth)

	_, err = memory.New(arena, "m", 16, 0)
	require.ErrorIs(t, err, memory.ErrBadWidth)
}

func TestNewRejectsOversizedInit(t *testing.T) {
	arena := value.NewArena()
	_, err := memory.New(arena, "m", 2, 4, memory.WithInit([]*big.Int{
		big.NewInt(1), big.NewInt(2), big.NewInt(3),
	}))
	require.ErrorIs(t, err, memory.ErrInitTooLong)
}

func TestReadPortAllocatesDataSignal(t *testing.T) {
	arena := value.NewArena()
	m, err := memory.New(arena, "m", 16, 8)
	require.NoError(t, err)

	addr := value.NewSignal(arena, shape.MustUnsigned(4))
	data, err := m.ReadPort("sync", addr)
	require.NoError(t, err)
	require.Equal(t, 8, data.Shape.Width)

	frag := m.Fragment()
	require.Equal(t, fragment.KindMemory, frag.Kind)
	require.Len(t, frag.Memory.ReadPorts, 1)
}

func TestReadPortRejectsNarrowAddr(t *testing.T) {
	arena := value.NewArena()
	m, err := memory.New(arena, "m", 256, 8)
	require.NoError(t, err)

	addr := value.NewSignal(arena, shape.MustUnsigned(2))
	_, err = m.ReadPort("", addr)
	require.ErrorIs(t, err, memory.ErrBadAddrWidth)
}

func TestWritePortValidatesWidths(t *testing.T) {
	arena := value.NewArena()
	m, err := memory.New(arena, "m", 16, 8)
	require.NoError(t, err)

	addr := value.NewSignal(arena, shape.MustUnsigned(4))
	data := value.NewSignal(arena, shape.MustUnsigned(8))
	en := value.NewSignal(arena, shape.MustUnsigned(1))

	require.NoError(t, m.WritePort("sync", addr, data, en))

	badData := value.NewSignal(arena, shape.MustUnsigned(4))
	err = m.WritePort("sync", addr, badData, en)
	require.Error(t, err)
}

func TestWriteWithGranularityValidatesEnableWidth(t *testing.T) {
	arena := value.NewArena()
	m, err := memory.New(arena, "m", 16, 8)
	require.NoError(t, err)

	addr := value.NewSignal(arena, shape.MustUnsigned(4))
	data := value.NewSignal(arena, shape.MustUnsigned(8))
	en := value.NewSignal(arena, shape.MustUnsigned(4)) // want 2 (8/4)

	err = m.WriteWithGranularity("sync", addr, data, en, 4)
	require.ErrorIs(t, err, memory.ErrBadEnableWidth)
}

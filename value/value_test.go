package value_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

func TestConstModularReduction(t *testing.T) {
	c := value.NewConst(big.NewInt(-1), shape.MustUnsigned(4))
	require.Equal(t, big.NewInt(15), c.Val)
}

func TestSliceBounds(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(8))

	_, err := value.NewSlice(sig, 2, 4)
	require.NoError(t, err)

	_, err = value.NewSlice(sig, 4, 2)
	require.ErrorIs(t, err, value.ErrSliceRange)

	_, err = value.NewSlice(sig, 0, 9)
	require.ErrorIs(t, err, value.ErrSliceRange)
}

func TestCatAdditiveWidth(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(3))
	b := value.NewSignal(arena, shape.MustUnsigned(5))
	cat, err := value.NewCat(a, b)
	require.NoError(t, err)
	require.Equal(t, 8, value.Len(cat))
	require.False(t, value.ShapeOf(cat).Signed)
}

func TestOperatorAddWidensByOne(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(4))
	sum := value.NewBinary(value.OpAdd, a, b)
	sh := value.ShapeOf(sum)
	require.Equal(t, 5, sh.Width)
	require.False(t, sh.Signed)
}

func TestOperatorMulAddsWidths(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(3))
	prod := value.NewBinary(value.OpMul, a, b)
	require.Equal(t, 7, value.Len(prod))
}

func TestComparisonIsWidthOne(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustSigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(4))
	lt := value.NewBinary(value.OpLt, a, b)
	require.Equal(t, 1, value.Len(lt))
}

func TestPromotedSignedMixedSign(t *testing.T) {
	a := shape.MustSigned(4)
	b := shape.MustUnsigned(4)
	got := value.PromotedSigned(a, b)
	require.True(t, got.Signed)
	require.Equal(t, 5, got.Width)
}

func TestLHSSignalsRejectsNonLHS(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(4))
	sum := value.NewBinary(value.OpAdd, a, b)

	_, err := value.LHSSignals(sum)
	require.ErrorIs(t, err, value.ErrBadLHS)
}

func TestLHSSignalsThroughCat(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	b := value.NewSignal(arena, shape.MustUnsigned(4))
	cat, err := value.NewCat(a, b)
	require.NoError(t, err)

	sigs, err := value.LHSSignals(cat)
	require.NoError(t, err)
	require.ElementsMatch(t, []*value.Signal{a, b}, sigs)
}

func TestLHSSignalsThroughCast(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	cast := value.NewUnary(value.OpAsSigned, a)

	sigs, err := value.LHSSignals(cast)
	require.NoError(t, err)
	require.Equal(t, []*value.Signal{a}, sigs)
}

func TestRHSSignalsDedupes(t *testing.T) {
	arena := value.NewArena()
	a := value.NewSignal(arena, shape.MustUnsigned(4))
	expr := value.NewBinary(value.OpAdd, a, a)

	sigs := value.RHSSignals(expr)
	require.Len(t, sigs, 1)
	require.Same(t, a, sigs[0])
}

func TestArrayProxyClampsToLast(t *testing.T) {
	arena := value.NewArena()
	elems := []value.Value{
		value.NewSignal(arena, shape.MustUnsigned(4)),
		value.NewSignal(arena, shape.MustUnsigned(4)),
	}
	idx := value.NewSignal(arena, shape.MustUnsigned(3))
	ap, err := value.NewArrayProxy(elems, idx)
	require.NoError(t, err)
	require.Same(t, elems[1], ap.ElemAt(99))
	require.Same(t, elems[0], ap.ElemAt(-5))
}

func TestSampleRejectsNegativeCycles(t *testing.T) {
	arena := value.NewArena()
	sig := value.NewSignal(arena, shape.MustUnsigned(4))
	_, err := value.NewSample(sig, -1, "sync")
	require.ErrorIs(t, err, value.ErrNegativeCycles)
}

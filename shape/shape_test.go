package shape_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrine-maiden-heavy-industries/torii-go/shape"
)

func TestUnsigned(t *testing.T) {
	s, err := shape.Unsigned(4)
	require.NoError(t, err)
	require.Equal(t, shape.Shape{Width: 4, Signed: false}, s)

	_, err = shape.Unsigned(-1)
	require.ErrorIs(t, err, shape.ErrNegativeWidth)
}

func TestSignedRejectsZeroWidth(t *testing.T) {
	_, err := shape.SignedShape(0)
	require.ErrorIs(t, err, shape.ErrZeroWidthSigned)

	s, err := shape.SignedShape(1)
	require.NoError(t, err)
	require.True(t, s.Signed)
	require.Equal(t, 1, s.Width)
}

func TestFromRange(t *testing.T) {
	cases := []struct {
		min, max int64
		want     shape.Shape
	}{
		{0, 1, shape.Shape{Width: 0, Signed: false}},
		{0, 16, shape.Shape{Width: 4, Signed: false}},
		{-8, 8, shape.Shape{Width: 4, Signed: true}},
		{-1, 1, shape.Shape{Width: 1, Signed: true}},
	}
	for _, c := range cases {
		got, err := shape.FromRange(c.min, c.max)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "FromRange(%d, %d)", c.min, c.max)
	}

	_, err := shape.FromRange(4, 4)
	require.ErrorIs(t, err, shape.ErrEmptyRange)
}

func TestFromEnum(t *testing.T) {
	members := []shape.EnumMember{
		{Name: "RED", Value: big.NewInt(0)},
		{Name: "GREEN", Value: big.NewInt(1)},
		{Name: "BLUE", Value: big.NewInt(2)},
	}
	got, err := shape.FromEnum(members)
	require.NoError(t, err)
	require.Equal(t, shape.Shape{Width: 2, Signed: false}, got)

	_, err = shape.FromEnum(nil)
	require.ErrorIs(t, err, shape.ErrEmptyEnum)
}

func TestShapeString(t *testing.T) {
	require.Equal(t, "unsigned(4)", shape.MustUnsigned(4).String())
	require.Equal(t, "signed(8)", shape.MustSigned(8).String())
}

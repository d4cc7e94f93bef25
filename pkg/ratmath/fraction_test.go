package ratmath

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkFraction(n, d int64) Fraction {
	f, err := NewFraction(big.NewInt(n), big.NewInt(d), false)
	if err != nil {
		panic(err)
	}
	return f
}

func TestFractionNonReducingArithmetic(t *testing.T) {
	a := mkFraction(2, 4)
	b := mkFraction(1, 4)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "3/4", sum.String())

	_, err = a.Subtract(mkFraction(1, 3))
	require.Error(t, err, "mismatched denominators must fail, not auto-common-denominator")

	prod := a.Multiply(b)
	assert.Equal(t, "2/16", prod.String(), "Multiply does not reduce")
}

func TestFractionReduce(t *testing.T) {
	a := mkFraction(2, 4)
	assert.Equal(t, "1/2", a.Reduce().String())
}

func TestFractionInfiniteSentinels(t *testing.T) {
	pos := PositiveInfinity()
	neg := NegativeInfinity()
	assert.True(t, pos.IsInfinite())
	assert.True(t, neg.IsInfinite())
	assert.Equal(t, 1, pos.Cmp(mkFraction(1000, 1)))
	assert.Equal(t, -1, neg.Cmp(mkFraction(-1000, 1)))

	_, err := pos.ToRational()
	require.Error(t, err)
}

func TestMediant(t *testing.T) {
	a := mkFraction(0, 1)
	b := mkFraction(1, 1)
	m := Mediant(a, b)
	assert.Equal(t, "1/2", m.String())

	withInf := Mediant(a, PositiveInfinity())
	assert.Equal(t, "1/1", withInf.String())
}

func TestMediantPartner(t *testing.T) {
	a := mkFraction(0, 1)
	m := mkFraction(1, 2)
	partner := MediantPartner(a, m)
	assert.Equal(t, "1/1", partner.String())
}

func TestNewFractionZeroDenominatorRules(t *testing.T) {
	_, err := NewFraction(big.NewInt(2), big.NewInt(0), false)
	require.Error(t, err)

	_, err = NewFraction(big.NewInt(2), big.NewInt(0), true)
	require.Error(t, err, "only |n|==1 may be infinite")

	_, err = NewFraction(big.NewInt(1), big.NewInt(0), true)
	require.NoError(t, err)
}

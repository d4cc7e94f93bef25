package ratmath

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTerminating(t *testing.T) {
	r, _ := RationalFromInt64(1, 4)
	exp, err := r.Expand(Decimal, 20)
	require.NoError(t, err)
	assert.True(t, exp.Terminating)
	assert.Equal(t, "0", exp.IntegerPart)
	assert.Equal(t, "25", exp.PrePeriod)
	assert.Equal(t, "", exp.Period)
}

func TestExpandRepeating(t *testing.T) {
	r, _ := RationalFromInt64(1, 3)
	exp, err := r.Expand(Decimal, 20)
	require.NoError(t, err)
	assert.False(t, exp.Terminating)
	assert.Equal(t, "3", exp.Period)
}

func TestExpandMixedPrePeriodAndPeriod(t *testing.T) {
	r, _ := RationalFromInt64(1, 6) // 0.1(6)
	exp, err := r.Expand(Decimal, 20)
	require.NoError(t, err)
	assert.Equal(t, "1", exp.PrePeriod)
	assert.Equal(t, "6", exp.Period)
}

func TestFormatRoundTrip(t *testing.T) {
	r, _ := RationalFromInt64(1, 3)
	s, err := r.Format(Decimal)
	require.NoError(t, err)
	assert.Equal(t, "0.#3", s)

	back, err := ParseRepeatingDecimal(s)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestFormatTerminating(t *testing.T) {
	r, _ := RationalFromInt64(1, 4)
	s, err := r.Format(Decimal)
	require.NoError(t, err)
	assert.Equal(t, "0.25#0", s)
}

func TestParseRepeatingDecimalNegative(t *testing.T) {
	r, err := ParseRepeatingDecimal("-0.#3")
	require.NoError(t, err)
	want, _ := RationalFromInt64(-1, 3)
	assert.True(t, r.Equal(want))
}

func TestToCFAndBack(t *testing.T) {
	r, _ := RationalFromInt64(355, 113)
	terms := r.ToCF(10)
	back, err := RationalFromCF(terms)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestConvergentsMonotoneApproach(t *testing.T) {
	r, _ := RationalFromInt64(355, 113)
	terms := r.ToCF(10)
	convs, err := ConvergentsFromCF(terms)
	require.NoError(t, err)
	require.NotEmpty(t, convs)
	assert.True(t, convs[len(convs)-1].Equal(r))
}

func TestBestApproximation(t *testing.T) {
	pi355, _ := RationalFromInt64(355, 113)
	best, err := pi355.BestApproximation(big.NewInt(10))
	require.NoError(t, err)
	assert.LessOrEqual(t, best.Denominator().Int64(), int64(10))
}

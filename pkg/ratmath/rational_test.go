package ratmath

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRationalCanonicalization(t *testing.T) {
	var canonTests = []struct {
		n, d     int64
		wantN    int64
		wantD    int64
	}{
		{2, 4, 1, 2},
		{-2, 4, -1, 2},
		{2, -4, -1, 2},
		{0, 5, 0, 1},
		{6, 3, 2, 1},
	}
	for _, tt := range canonTests {
		r, err := RationalFromInt64(tt.n, tt.d)
		require.NoError(t, err)
		assert.Equal(t, tt.wantN, r.Numerator().Int64())
		assert.Equal(t, tt.wantD, r.Denominator().Int64())
	}
}

func TestRationalZeroDenominator(t *testing.T) {
	_, err := RationalFromInt64(1, 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDivisionByZero))
}

func TestRationalArithmetic(t *testing.T) {
	a, _ := RationalFromInt64(1, 2)
	b, _ := RationalFromInt64(1, 3)

	assert.Equal(t, "5/6", a.Add(b).String())
	assert.Equal(t, "1/6", a.Subtract(b).String())
	assert.Equal(t, "1/6", a.Multiply(b).String())

	q, err := a.Divide(b)
	require.NoError(t, err)
	assert.Equal(t, "3/2", q.String())

	_, err = a.Divide(Rational{n: big.NewInt(0), d: big.NewInt(1)})
	require.Error(t, err)
}

func TestRationalPow(t *testing.T) {
	a, _ := RationalFromInt64(2, 3)
	r, err := a.Pow(3)
	require.NoError(t, err)
	assert.Equal(t, "8/27", r.String())

	r, err = a.Pow(-1)
	require.NoError(t, err)
	assert.Equal(t, "3/2", r.String())
}

func TestRationalIntegerPartAndRemainder(t *testing.T) {
	r, _ := RationalFromInt64(7, 2)
	assert.Equal(t, int64(3), r.IntegerPart().Int64())
	assert.Equal(t, "1/2", r.Remainder().String())

	neg, _ := RationalFromInt64(-7, 2)
	assert.Equal(t, int64(-4), neg.IntegerPart().Int64())
}

func TestParseRationalShapes(t *testing.T) {
	var parseTests = []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{"5/2", "5/2"},
		{"-5/2", "-5/2"},
		{"1.5", "3/2"},
		{"0.25", "1/4"},
		{"2..1/2", "5/2"},
	}
	for _, tt := range parseTests {
		r, err := ParseRational(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, r.String(), tt.in)
	}
}

func TestParseRationalRunLength(t *testing.T) {
	r, err := ParseRational("1.{3~4}")
	require.NoError(t, err)
	want, _ := ParseRational("1.3333")
	assert.True(t, r.Equal(want))
}

func TestParseRationalInvalid(t *testing.T) {
	_, err := ParseRational("abc")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidLiteral))
}

func TestExplicitFractionNeverDemotes(t *testing.T) {
	r, err := ParseRational("4/2")
	require.NoError(t, err)
	assert.True(t, r.explicitFraction)
	assert.Equal(t, Value(r), demoteRational(r))
}

func TestCompressAndExpandRunLength(t *testing.T) {
	compressed := compressRunLength("3333333", 4)
	assert.Equal(t, "{3~7}", compressed)
	assert.Equal(t, "3333333", expandRunLength(compressed))
	assert.Equal(t, "333", expandRunLength("333"))
}

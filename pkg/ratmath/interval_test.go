package ratmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkInterval(lo, hi string) RationalInterval {
	l, _ := ParseRational(lo)
	h, _ := ParseRational(hi)
	return NewRationalInterval(l, h)
}

func TestRationalIntervalConstructorOrders(t *testing.T) {
	iv := mkInterval("5", "1")
	assert.Equal(t, "1", iv.Lo().String())
	assert.Equal(t, "5", iv.Hi().String())
}

func TestRationalIntervalArithmetic(t *testing.T) {
	a := mkInterval("1", "2")
	b := mkInterval("3", "4")

	assert.Equal(t, "4:6", a.Add(b).String())
	assert.Equal(t, "-3:-1", a.Subtract(b).String())
	assert.Equal(t, "3:8", a.Multiply(b).String())

	q, err := a.Divide(b)
	require.NoError(t, err)
	assert.Equal(t, "1/4:2/3", q.String())
}

func TestRationalIntervalDivideByZeroContaining(t *testing.T) {
	a := mkInterval("1", "2")
	z := mkInterval("-1", "1")
	_, err := a.Divide(z)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDomainError))
}

func TestRationalIntervalPowEven(t *testing.T) {
	a := mkInterval("-2", "3")
	r, err := a.Pow(2)
	require.NoError(t, err)
	assert.Equal(t, "0:9", r.String())
}

func TestRationalIntervalPowOdd(t *testing.T) {
	a := mkInterval("-2", "3")
	r, err := a.Pow(3)
	require.NoError(t, err)
	assert.Equal(t, "-8:27", r.String())
}

func TestRationalIntervalMPowZero(t *testing.T) {
	a := mkInterval("1", "2")
	_, err := a.MPow(0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMultPowZero))
}

func TestRationalIntervalMPowSetsSkipPromotion(t *testing.T) {
	a := mkInterval("2", "2")
	r, err := a.MPow(2)
	require.NoError(t, err)
	assert.True(t, r.skipPromotion)
}

func TestRationalIntervalOverlapContainsUnionIntersection(t *testing.T) {
	a := mkInterval("1", "3")
	b := mkInterval("2", "4")
	c := mkInterval("5", "6")

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))

	u, ok := a.Union(b)
	require.True(t, ok)
	assert.Equal(t, "1:4", u.String())

	_, ok = a.Union(c)
	assert.False(t, ok)

	i, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, "2:3", i.String())

	assert.True(t, mkInterval("1", "5").Contains(a))
}

func TestRationalIntervalMediantMidpoint(t *testing.T) {
	a := mkInterval("1/2", "2/3")
	assert.Equal(t, "3/5", a.Mediant().String())
	assert.Equal(t, "7/12", a.Midpoint().String())
}

func TestShortestDecimal(t *testing.T) {
	a := mkInterval("0.1", "0.2")
	r, err := a.ShortestDecimal(Decimal)
	require.NoError(t, err)
	assert.True(t, a.ContainsRational(r))
}

func TestRandomRationalFallsBackToMidpointWhenEmpty(t *testing.T) {
	a := mkInterval("1/100", "2/100")
	r := a.RandomRational(1, nil)
	assert.True(t, a.ContainsRational(r))
}

func TestNewExplicitIntervalKeepsDegenerate(t *testing.T) {
	one, _ := RationalFromInt64(1, 1)
	iv := NewExplicitInterval(one, one)
	assert.True(t, iv.explicitInterval)
	assert.Equal(t, Value(iv), demoteInterval(iv))
}

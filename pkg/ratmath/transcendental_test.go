package ratmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpsilonFromPrecision(t *testing.T) {
	eps := EpsilonFromPrecision(0)
	want, _ := RationalFromInt64(1, 1_000_000)
	assert.True(t, eps.Equal(want))

	eps = EpsilonFromPrecision(-3)
	want, _ = RationalFromInt64(1, 1000)
	assert.True(t, eps.Equal(want))

	eps = EpsilonFromPrecision(4)
	want, _ = RationalFromInt64(1, 4)
	assert.True(t, eps.Equal(want))
}

func TestLookupTranscendentalPI(t *testing.T) {
	fn, ok := LookupTranscendental("PI")
	require.True(t, ok)

	eps, _ := RationalFromInt64(1, 1_000_000)
	iv, err := fn(nil, eps)
	require.NoError(t, err)

	assert.True(t, iv.ContainsRational(mustParsePiApprox(t)))
	width := iv.Hi().Subtract(iv.Lo())
	tolerance, _ := RationalFromInt64(1, 10_000)
	assert.Equal(t, -1, width.Cmp(tolerance), "enclosure width should be within a small multiple of eps")
}

func TestLookupTranscendentalUnknown(t *testing.T) {
	_, ok := LookupTranscendental("FROBNICATE")
	assert.False(t, ok)
}

func TestRegisterTranscendentalCustom(t *testing.T) {
	called := false
	RegisterTranscendental("DOUBLE", func(args []Value, eps Rational) (RationalInterval, error) {
		called = true
		v := args[0].(Integer).ToRational()
		two, _ := RationalFromInt64(2, 1)
		r := v.Multiply(two)
		return NewRationalInterval(r, r), nil
	})
	fn, ok := LookupTranscendental("double")
	require.True(t, ok)
	_, err := fn([]Value{IntegerFromInt64(21)}, Rational{})
	require.NoError(t, err)
	assert.True(t, called)
}

func mustParsePiApprox(t *testing.T) Rational {
	t.Helper()
	r, err := ParseRational("31415926/10000000")
	require.NoError(t, err)
	return r
}

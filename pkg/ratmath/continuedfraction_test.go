package ratmath

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContinuedFractionFoldsTrailingOne(t *testing.T) {
	cf, err := NewContinuedFraction([]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, cf.Len())
	assert.Equal(t, "[1; 3]", cf.String())
}

func TestNewContinuedFractionRejectsNonPositiveTerm(t *testing.T) {
	_, err := NewContinuedFraction([]*big.Int{big.NewInt(1), big.NewInt(0)})
	require.Error(t, err)
}

func TestFromRationalAndToRational(t *testing.T) {
	r, _ := RationalFromInt64(355, 113)
	cf := FromRational(r, 10)
	back, err := cf.ToRational()
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestContinuedFractionConvergents(t *testing.T) {
	r, _ := RationalFromInt64(355, 113)
	cf := FromRational(r, 10)
	convs, err := cf.Convergents()
	require.NoError(t, err)
	assert.True(t, convs[len(convs)-1].Equal(r))
}

func TestParseCFLiteralSingleTerm(t *testing.T) {
	cf, err := ParseCFLiteral("3.~0")
	require.NoError(t, err)
	assert.Equal(t, "[3]", cf.String())
}

func TestParseCFLiteralMultipleTerms(t *testing.T) {
	cf, err := ParseCFLiteral("3.~7~15~1")
	require.NoError(t, err)
	assert.Equal(t, 4, cf.Len(), "a literal's terms are kept as written, not folded")

	r, err := cf.ToRational()
	require.NoError(t, err)
	want, _ := RationalFromInt64(355, 113)
	assert.True(t, r.Equal(want))

	convs, err := cf.Convergents()
	require.NoError(t, err)
	require.Len(t, convs, 4)
	wantConvs := []struct{ n, d int64 }{
		{3, 1},
		{22, 7},
		{333, 106},
		{355, 113},
	}
	for i, wc := range wantConvs {
		want, _ := RationalFromInt64(wc.n, wc.d)
		assert.True(t, convs[i].Equal(want), "convergent %d: got %s, want %d/%d", i, convs[i].String(), wc.n, wc.d)
	}
}

func TestParseCFLiteralRejectsMissingMarker(t *testing.T) {
	_, err := ParseCFLiteral("3")
	require.Error(t, err)
}

func TestParseCFLiteralRejectsTrailingTilde(t *testing.T) {
	_, err := ParseCFLiteral("3.~7~")
	require.Error(t, err)
}

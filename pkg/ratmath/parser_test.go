package ratmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArithmeticPrecedence(t *testing.T) {
	var exprTests = []struct {
		expr string
		want string
	}{
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"2 - 3 - 4", "-5"},
		{"10 / 4", "5/2"},
		{"2 ** 10", "1024"},
		{"2^10", "1024"},
		{"-3 + 4", "1"},
		{"--3", "3"},
		{"5!", "120"},
		{"6!!", "48"},
	}
	for _, tt := range exprTests {
		v, err := R(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, v.String(), tt.expr)
	}
}

func TestParseFractionLiteralVsDivision(t *testing.T) {
	v, err := R("5/2")
	require.NoError(t, err)
	assert.Equal(t, "5/2", v.String())
	_, ok := v.(Rational)
	assert.True(t, ok)

	v, err = R("10/ 2")
	require.NoError(t, err)
	assert.Equal(t, "5", v.String(), "division with a space must reduce to Integer, not stay an explicit Fraction")
	_, ok = v.(Integer)
	assert.True(t, ok)
}

func TestParseScientificLiteralVsEOperator(t *testing.T) {
	v, err := R("3E2")
	require.NoError(t, err)
	assert.Equal(t, "300", v.String())

	v, err = R("3 E 2")
	require.NoError(t, err)
	assert.Equal(t, "300", v.String())

	v, err = R("3 E2")
	require.NoError(t, err)
	assert.Equal(t, "300", v.String())
}

func TestParseExplicitInterval(t *testing.T) {
	v, err := R("1:2")
	require.NoError(t, err)
	iv, ok := v.(RationalInterval)
	require.True(t, ok)
	assert.Equal(t, "1:2", iv.String())
}

func TestParseIntervalArithmetic(t *testing.T) {
	v, err := R("(1:2) + (3:4)")
	require.NoError(t, err)
	assert.Equal(t, "4:6", v.String())
}

func TestParseMixedNumberAndContinuedFraction(t *testing.T) {
	v, err := R("2..1/2")
	require.NoError(t, err)
	assert.Equal(t, "5/2", v.String())

	v, err = R("3.~7~15~1")
	require.NoError(t, err)
	assert.Equal(t, "355/113", v.String())
}

func TestParseRepeatingAndUncertainty(t *testing.T) {
	v, err := R("1.5[+-0.1]")
	require.NoError(t, err)
	iv, ok := v.(RationalInterval)
	require.True(t, ok)
	assert.Equal(t, "7/5:8/5", iv.String())
}

func TestParseBasePrefixedLiteral(t *testing.T) {
	v, err := R("0xff")
	require.NoError(t, err)
	assert.Equal(t, "255", v.String())

	v, err = R("0b1010")
	require.NoError(t, err)
	assert.Equal(t, "10", v.String())
}

func TestParseTypeAwareFalseImpliesUncertainty(t *testing.T) {
	v, err := Parse("1.5", WithTypeAware(false))
	require.NoError(t, err)
	_, ok := v.(RationalInterval)
	assert.True(t, ok)

	v, err = Parse("1.5", WithTypeAware(true))
	require.NoError(t, err)
	_, ok = v.(Rational)
	assert.True(t, ok)
}

func TestParseWithoutENotation(t *testing.T) {
	v, err := Parse("3E2", WithoutENotation())
	require.Error(t, err, "E must not be parsed as scientific notation or an operator without an rhs")
	_ = v
}

func TestParseFunctionCallPI(t *testing.T) {
	v, err := R("PI()")
	require.NoError(t, err)
	iv, ok := v.(RationalInterval)
	require.True(t, ok)
	assert.True(t, iv.ContainsRational(mustParsePiApprox(t)))
}

func TestParseFunctionCallWithPrecision(t *testing.T) {
	v1, err := R("PI[2](())")
	_ = v1
	require.Error(t, err, "malformed call should fail, not panic")

	v2, err := R("PI[2]()")
	require.NoError(t, err)
	assert.NotNil(t, v2)
}

func TestParseUnknownFunctionFails(t *testing.T) {
	_, err := R("FROBNICATE(1)")
	require.Error(t, err)
}

func TestParseUnexpectedTrailingInput(t *testing.T) {
	_, err := R("1 + 2 3")
	require.Error(t, err)
}

func TestParseEmptyExpression(t *testing.T) {
	_, err := R("")
	require.Error(t, err)
}

func TestParseMissingParenthesis(t *testing.T) {
	_, err := R("(1 + 2")
	require.Error(t, err)
}

func TestRationalExponent(t *testing.T) {
	v, err := R("8^(1/3)")
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())

	_, err = R("2^(1/2)")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDomainError))
}

func TestFShortcut(t *testing.T) {
	f, err := F("3/4")
	require.NoError(t, err)
	assert.Equal(t, "3/4", f.String())

	f, err = F("2..1/2")
	require.NoError(t, err)
	assert.Equal(t, "5/2", f.String())

	f, err = F("-3/4")
	require.NoError(t, err)
	assert.Equal(t, "-3/4", f.String())
}

func TestParseCustomInputBase(t *testing.T) {
	v, err := Parse("ff", WithInputBase(Hexadecimal))
	require.NoError(t, err)
	assert.Equal(t, "255", v.String())
}

func TestDemotionAcrossArithmetic(t *testing.T) {
	v, err := R("1/2 + 1/2")
	require.NoError(t, err)
	_, ok := v.(Integer)
	assert.True(t, ok, "1/2+1/2 must demote to Integer 1")
}

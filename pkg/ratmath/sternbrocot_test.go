package ratmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathRoundTrip(t *testing.T) {
	var pathTests = []Fraction{
		mkFraction(1, 1),
		mkFraction(1, 2),
		mkFraction(3, 2),
		mkFraction(5, 3),
	}
	for _, f := range pathTests {
		path, err := Path(f)
		require.NoError(t, err, f.String())
		back, err := FromPath(path)
		require.NoError(t, err, f.String())
		assert.True(t, f.Reduce().Equal(back), "%s -> %v -> %s", f, path, back)
	}
}

func TestPathRootIsEmpty(t *testing.T) {
	path, err := Path(mkFraction(1, 1))
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestParentOfRootFails(t *testing.T) {
	_, err := Parent(mkFraction(1, 1))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDomainError))
}

func TestChildrenAndParentInverse(t *testing.T) {
	f := mkFraction(3, 2)
	left, right, err := Children(f)
	require.NoError(t, err)

	pl, err := Parent(left)
	require.NoError(t, err)
	assert.True(t, pl.Equal(f.Reduce()))

	pr, err := Parent(right)
	require.NoError(t, err)
	assert.True(t, pr.Equal(f.Reduce()))
}

func TestDepthAndAncestors(t *testing.T) {
	f := mkFraction(5, 3)
	depth, err := Depth(f)
	require.NoError(t, err)

	ancestors, err := Ancestors(f)
	require.NoError(t, err)
	assert.Len(t, ancestors, depth)
	if depth > 0 {
		assert.True(t, ancestors[0].Equal(mkFraction(1, 1)))
	}
}

func TestNegativeFractionMirrorsPositivePath(t *testing.T) {
	pos, err := Path(mkFraction(3, 2))
	require.NoError(t, err)
	neg, err := Path(mkFraction(-3, 2))
	require.NoError(t, err)
	assert.Equal(t, pos, neg)
}

package ratmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractionIntervalMediantSplit(t *testing.T) {
	fi := NewFractionInterval(mkFraction(0, 1), mkFraction(1, 1))
	left, right := fi.MediantSplit()
	assert.Equal(t, "0/1:1/2", left.String())
	assert.Equal(t, "1/2:1/1", right.String())
}

func TestFractionIntervalPartitionWithMediants(t *testing.T) {
	fi := NewFractionInterval(mkFraction(0, 1), mkFraction(1, 1))
	parts := fi.PartitionWithMediants(2)
	assert.Len(t, parts, 4)
	assert.Equal(t, "0/1:1/3", parts[0].String())
	assert.Equal(t, "2/3:1/1", parts[3].String())
}

func TestFractionIntervalPartitionWithRejectsOutOfRange(t *testing.T) {
	fi := NewFractionInterval(mkFraction(0, 1), mkFraction(1, 1))
	_, err := fi.PartitionWith(func(FractionInterval) []Fraction {
		return []Fraction{mkFraction(2, 1)}
	})
	require.Error(t, err)
}

func TestFractionIntervalPartitionWithDedupes(t *testing.T) {
	fi := NewFractionInterval(mkFraction(0, 1), mkFraction(1, 1))
	parts, err := fi.PartitionWith(func(FractionInterval) []Fraction {
		return []Fraction{mkFraction(1, 2), mkFraction(1, 2)}
	})
	require.NoError(t, err)
	assert.Len(t, parts, 2)
}

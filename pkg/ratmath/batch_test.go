package ratmath

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalManyPreservesOrderAndValues(t *testing.T) {
	exprs := []string{"1 + 1", "2 * 3", "10 / 4", "bad(((", "5!"}
	results := EvalMany(exprs)
	require.Len(t, results, len(exprs))

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "2", results[0].Value.String())

	assert.NoError(t, results[1].Err)
	assert.Equal(t, "6", results[1].Value.String())

	assert.NoError(t, results[2].Err)
	assert.Equal(t, "5/2", results[2].Value.String())

	require.Error(t, results[3].Err, "one malformed expression must not affect the others")

	assert.NoError(t, results[4].Err)
	assert.Equal(t, "120", results[4].Value.String())

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
}

func TestEvalManyEmpty(t *testing.T) {
	results := EvalMany(nil)
	assert.Empty(t, results)
}

func TestEvalManyContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	exprs := make([]string, 200)
	for i := range exprs {
		exprs[i] = "1 + 1"
	}
	results := EvalManyContext(ctx, exprs)
	require.Len(t, results, len(exprs))

	var sawCancellation bool
	for _, r := range results {
		if r.Err != nil {
			sawCancellation = true
		}
	}
	assert.True(t, sawCancellation, "an already-expired context should prevent at least some submissions")
}

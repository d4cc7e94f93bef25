package ratmath

import (
	"context"

	"github.com/jostylr/ratmath/internal/workpool"
)

// EvalResult is one expression's outcome from EvalMany, keeping the result
// aligned to its input index regardless of completion order.
type EvalResult struct {
	Index int
	Value Value
	Err   error
}

// EvalMany parses and evaluates every expression in exprs concurrently,
// using a bounded worker pool of at most defaultBatchWorkers (8) workers,
// and returns one EvalResult
// per input in the original order. A single malformed expression reports
// its own error in Err without affecting the others.
func EvalMany(exprs []string, opts ...ParserOption) []EvalResult {
	return EvalManyContext(context.Background(), exprs, opts...)
}

// EvalManyContext is EvalMany with a caller-supplied context; cancelling ctx
// stops submitting new work and every not-yet-submitted expression reports
// ctx.Err().
func EvalManyContext(ctx context.Context, exprs []string, opts ...ParserOption) []EvalResult {
	results := make([]EvalResult, len(exprs))
	if len(exprs) == 0 {
		return results
	}

	p := workpool.New(min(len(exprs), defaultBatchWorkers))
	defer p.Shutdown()

	parser := NewParser(opts...)
	for i, expr := range exprs {
		i, expr := i, expr
		if err := ctx.Err(); err != nil {
			results[i] = EvalResult{Index: i, Err: err}
			continue
		}
		err := p.Submit(ctx, func() {
			v, err := parser.Parse(expr)
			results[i] = EvalResult{Index: i, Value: v, Err: err}
		})
		if err != nil {
			results[i] = EvalResult{Index: i, Err: err}
		}
	}
	return results
}

const defaultBatchWorkers = 8

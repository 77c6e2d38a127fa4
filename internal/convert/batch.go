package convert

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Sink receives each converted file. It runs on the worker goroutine.
type Sink func(ctx context.Context, input string, res *Result) error

// Outcome is the result for one input of a batch.
type Outcome struct {
	Input  string
	Result *Result
}

// Batch converts inputs in parallel with at most workers conversions in
// flight. Every input gets its own project. The first failure cancels the
// remaining work and is returned; outcomes are in input order and are nil
// for inputs that did not finish.
func Batch(ctx context.Context, inputs []string, workers int, opts Options, sink Sink) ([]*Outcome, error) {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]*Outcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := ConvertFile(gctx, input, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			if sink != nil {
				if err := sink(gctx, input, res); err != nil {
					return fmt.Errorf("%s: %w", input, err)
				}
			}
			outcomes[i] = &Outcome{Input: input, Result: res}
			return nil
		})
	}

	return outcomes, g.Wait()
}

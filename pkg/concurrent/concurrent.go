package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/inspect/pkg/sequence"
)

// Map applies fn to every element of the iterator using at most workers
// goroutines and returns the results in input order. The first error cancels
// the context passed to the remaining calls and is returned.
func Map[T, R any](ctx context.Context, it *sequence.Iterator[T], workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	in := it.Collect()
	out := make([]R, len(in))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for idx, val := range in {
		g.Go(func() error {
			r, err := fn(ctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

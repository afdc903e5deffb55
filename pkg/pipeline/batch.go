package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AnalyzeBatch analyzes independent genome sets concurrently, at most
// workers at a time (DefaultWorkers if workers < 1). Results keep the order
// of opts. The first error cancels the remaining analyses.
func (r *Runner) AnalyzeBatch(ctx context.Context, opts []Options, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}
	results := make([]*Result, len(opts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range opts {
		g.Go(func() error {
			res, err := r.Analyze(ctx, opts[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package speech

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallel tokenizes every speech using up to workers goroutines, so later
// calls to Document return immediately. workers <= 0 means GOMAXPROCS
func Parallel(ctx context.Context, speeches []*Speech, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, s := range speeches {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := s.Document()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

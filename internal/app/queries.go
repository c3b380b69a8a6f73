package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchAll issues every fetch concurrently on a shared context and waits for
// all of them. The first failure cancels the rest and is returned; callers
// treat the whole load as failed.
func FetchAll(ctx context.Context, fetches ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fetches {
		f := f
		g.Go(func() error { return f(gctx) })
	}
	return g.Wait()
}

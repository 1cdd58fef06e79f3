package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PartialResult holds a result or an error for partial success patterns.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// Settle2 runs both functions concurrently and waits for both. A failure in
// one does not cancel the other.
func Settle2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (PartialResult[T1], PartialResult[T2]) {
	var (
		g  errgroup.Group
		r1 PartialResult[T1]
		r2 PartialResult[T2]
	)

	g.Go(func() error {
		r1.Value, r1.Err = fn1(ctx)
		return nil
	})

	g.Go(func() error {
		r2.Value, r2.Err = fn2(ctx)
		return nil
	})

	_ = g.Wait()

	return r1, r2
}

// Sequence2 runs fn1 then fn2, always running fn2.
func Sequence2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (PartialResult[T1], PartialResult[T2]) {
	var (
		r1 PartialResult[T1]
		r2 PartialResult[T2]
	)

	r1.Value, r1.Err = fn1(ctx)
	r2.Value, r2.Err = fn2(ctx)

	return r1, r2
}

package utils

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// GroupWorkFunc handles the half open range of work items [from, to).
type GroupWorkFunc func(ctx context.Context, groupNum, from, to int) error

// GroupWorkParallel splits totalSize work items into contiguous groups and runs each group on its
// own goroutine, at most workers at a time. workers <= 0 uses ParallelFactor. The first error
// cancels the context handed to the remaining groups and is returned. A panic in a group is
// returned as an error.
func GroupWorkParallel(ctx context.Context, totalSize, workers int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = ParallelFactor
	}
	if workers > totalSize {
		workers = totalSize
	}
	groupSize := (totalSize + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for groupNum := 0; groupNum*groupSize < totalSize; groupNum++ {
		from, to := ChunkBounds(groupNum, groupSize, totalSize)
		g.Go(func() (err error) {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					err = fmt.Errorf("got panic running group %d in parallel: %v", groupNum, thePanic)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			return groupWork(ctx, groupNum, from, to)
		})
	}
	return g.Wait()
}

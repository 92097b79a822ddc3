// Package pool runs jobs on a bounded number of workers.
package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

// Func processes one job.
type Func func(ctx context.Context, job model.Job) model.Result

// Run processes jobs with at most workers concurrent calls to fn and streams
// the results. With one worker jobs run strictly in order. Once ctx is
// cancelled no further job is started; jobs never started produce no result.
// The channel is closed after the last worker returns.
func Run(ctx context.Context, jobs []model.Job, workers int, fn Func) <-chan model.Result {
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) && len(jobs) > 0 {
		workers = len(jobs)
	}

	queue := make(chan model.Job)
	results := make(chan model.Result, workers)

	go func() {
		defer close(queue)
		for _, job := range jobs {
			if ctx.Err() != nil {
				return
			}
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				results <- safeCall(ctx, job, fn)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// safeCall converts a panic in fn into a failure for that job only.
func safeCall(ctx context.Context, job model.Job, fn Func) (res model.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = model.Failed(job, fmt.Errorf("%w: panic: %v", model.ErrJobFailed, r))
		}
	}()
	return fn(ctx, job)
}

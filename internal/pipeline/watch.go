package pipeline

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/internal/report"
	"github.com/nguyentantai21042004/media-batch/internal/watcher"
)

// watch feeds newly created files through the same builder and processor
// until ctx is cancelled. Only the top level of the input directory is
// watched.
func (p *implPipeline) watch(ctx context.Context, agg *report.Aggregator) {
	results := make(chan model.Result)

	handler := func(ctx context.Context, path string) error {
		p.handle(ctx, path, results)
		return nil
	}

	w, err := watcher.New(p.opts.InputDir, handler, p.logger, watcher.Options{
		Extensions:    p.opts.Extensions,
		MaxConcurrent: p.opts.Workers,
		Settle:        p.opts.Settle,
	})
	if err != nil {
		p.logger.Error(ctx, "Watch mode unavailable: %v", err)
		return
	}
	defer w.Stop()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error(ctx, "Watcher error: %v", err)
		}
	}()

	// agg stays owned by this goroutine; handlers only send
	for {
		select {
		case res := <-results:
			agg.Grow(1)
			agg.Add(res)
			p.logger.Info(ctx, "[watch] %s: %s", filepath.Base(res.Job.Source), res.Outcome)
		case <-stopped:
			return
		}
	}
}

// handle plans and processes one watched file. Every outcome, planning
// errors included, is reported on results only.
func (p *implPipeline) handle(ctx context.Context, path string, results chan<- model.Result) {
	job, skip, err := p.opts.Builder.Plan(path)
	switch {
	case err != nil:
		results <- model.Failed(model.Job{Source: path}, err)
	case skip:
		results <- model.Skipped(job)
	default:
		results <- p.processor.Process(ctx, job)
	}
}

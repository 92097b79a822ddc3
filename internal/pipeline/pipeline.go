package pipeline

import (
	"context"
	"path/filepath"

	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/internal/pool"
	"github.com/nguyentantai21042004/media-batch/internal/report"
	"github.com/nguyentantai21042004/media-batch/internal/scanner"
)

// Run scans the input directory and processes every matching file. Only a
// missing input directory is returned as an error; job failures are tallied.
func (p *implPipeline) Run(ctx context.Context) (report.Stats, error) {
	files, err := p.discover(ctx)
	if err != nil {
		return report.Stats{}, err
	}

	agg := report.NewAggregator(len(files))
	if len(files) == 0 {
		p.logger.Warn(ctx, "No matching files found in %s", p.opts.InputDir)
	} else {
		p.logger.Info(ctx, "Found %d files in %s", len(files), p.opts.InputDir)
	}

	jobs := p.plan(ctx, files, agg)

	if len(jobs) > 0 {
		p.logger.Info(ctx, "Processing %d files with %d workers", len(jobs), p.opts.Workers)
	}

	done := agg.Stats().Processed()
	for res := range pool.Run(ctx, jobs, p.opts.Workers, p.processor.Process) {
		agg.Add(res)
		done++
		p.logger.Info(ctx, "[%d/%d] %s: %s", done, len(files), filepath.Base(res.Job.Source), res.Outcome)
	}

	if ctx.Err() != nil {
		p.logger.Warn(ctx, "Interrupted, %d files not started", agg.Stats().Pending())
		return agg.Finish(), nil
	}

	if p.opts.Watch {
		p.watch(ctx, agg)
	}

	return agg.Finish(), nil
}

func (p *implPipeline) discover(ctx context.Context) ([]string, error) {
	seq, err := scanner.Scan(p.opts.InputDir, scanner.Options{
		Recursive:  p.opts.Recursive,
		Extensions: p.opts.Extensions,
		Exclude:    p.opts.Exclude,
	})
	if err != nil {
		return nil, err
	}

	var files []string
	for path, err := range seq {
		if err != nil {
			p.logger.Warn(ctx, "Scan: %v", err)
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// plan builds jobs for files. Skips and planning errors go straight to agg.
func (p *implPipeline) plan(ctx context.Context, files []string, agg *report.Aggregator) []model.Job {
	var jobs []model.Job
	for _, f := range files {
		job, skip, err := p.opts.Builder.Plan(f)
		if err != nil {
			p.logger.Error(ctx, "Cannot plan %s: %v", f, err)
			agg.Add(model.Failed(model.Job{Source: f}, err))
			continue
		}
		if skip {
			p.logger.Info(ctx, "Skipping %s: %s exists", filepath.Base(f), job.Destination)
			agg.Add(model.Skipped(job))
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

// Process runs the job's profile stages and moves the final output into
// place only when every stage succeeded.
func (p *implTranscoder) Process(ctx context.Context, job model.Job) model.Result {
	startTime := time.Now()

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	p.logger.Debug(ctx, "[%s] Processing %s -> %s", shortID(job.ID), job.Source, job.Destination)

	res := p.transcode(ctx, job)
	res.Duration = time.Since(startTime)

	p.logResult(ctx, res)
	return res
}

func (p *implTranscoder) transcode(ctx context.Context, job model.Job) model.Result {
	stageDir, err := p.stagingDir()
	if err != nil {
		return model.Failed(job, err)
	}
	defer p.cleanupDir(ctx, stageDir)

	tmp, err := stagingFile(job.Destination)
	if err != nil {
		return model.Failed(job, fmt.Errorf("create staging file: %w", err))
	}
	defer p.cleanupTempFile(ctx, tmp)

	if res := p.runStages(ctx, job, stageDir, tmp); res != nil {
		return *res
	}

	if err := os.Rename(tmp, job.Destination); err != nil {
		return model.Failed(job, fmt.Errorf("move output into place: %w", err))
	}

	res := model.Result{Job: job, Outcome: model.OutcomeSuccess, Message: job.Destination}
	if job.Profile.CompareSizes {
		res.InputBytes = fileSize(job.Source)
		res.OutputBytes = fileSize(job.Destination)
	}
	return res
}

func (p *implTranscoder) logResult(ctx context.Context, res model.Result) {
	name := filepath.Base(res.Job.Source)
	id := shortID(res.Job.ID)

	switch res.Outcome {
	case model.OutcomeSuccess:
		if res.InputBytes > 0 {
			p.logger.Info(ctx, "[%s] Done %s (%.1f%% of original, %s)", id, name, res.Ratio(), res.Duration.Round(time.Millisecond))
		} else {
			p.logger.Info(ctx, "[%s] Done %s (%s)", id, name, res.Duration.Round(time.Millisecond))
		}
	case model.OutcomeNoTrack:
		p.logger.Warn(ctx, "[%s] No usable stream in %s", id, name)
	default:
		p.logger.Error(ctx, "[%s] Failed %s: %s", id, name, res.Message)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

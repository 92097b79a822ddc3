package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/internal/transcript"
)

// Process extracts speech audio from the job source into staging,
// transcribes it and writes the transcript to the job destination.
func (p *implTranscriber) Process(ctx context.Context, job model.Job) model.Result {
	startTime := time.Now()

	ctx, cancel := withTimeout(ctx, p.jobTimeout)
	defer cancel()

	p.logger.Debug(ctx, "[%s] Transcribing %s -> %s", shortID(job.ID), job.Source, job.Destination)

	res := p.transcribe(ctx, job)
	res.Duration = time.Since(startTime)

	p.logResult(ctx, res)
	return res
}

func (p *implTranscriber) transcribe(ctx context.Context, job model.Job) model.Result {
	stageDir, err := p.stagingDir()
	if err != nil {
		return model.Failed(job, err)
	}
	defer p.cleanupDir(ctx, stageDir)

	stem := strings.TrimSuffix(filepath.Base(job.Source), filepath.Ext(job.Source))
	audioPath := filepath.Join(stageDir, stem+job.Profile.Final().Ext)

	if res := p.runStages(ctx, job, stageDir, audioPath); res != nil {
		return *res
	}

	text, err := p.provider.Transcribe(ctx, audioPath, p.language)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return model.Failed(job, model.ErrTimeout)
		}
		return model.Failed(job, fmt.Errorf("%w: %s: %v", model.ErrJobFailed, p.provider.Name(), err))
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < p.minChars {
		return model.Failed(job, fmt.Errorf("%w (%d chars)", model.ErrResultTooShort, n))
	}

	doc := transcript.Document{
		Source:   job.Source,
		Text:     text,
		Provider: p.provider.Name(),
		Created:  time.Now(),
	}
	if err := p.writer.Write(ctx, doc, job.Destination); err != nil {
		return model.Failed(job, fmt.Errorf("%w: %v", model.ErrJobFailed, err))
	}

	if p.keepAudio {
		p.keepAudioFile(ctx, audioPath, job.Destination)
	}

	return model.Result{Job: job, Outcome: model.OutcomeSuccess, Message: job.Destination}
}

// keepAudioFile moves the staged audio to an audio/ folder beside the
// transcript.
func (p *implTranscriber) keepAudioFile(ctx context.Context, audioPath, destination string) {
	dir := filepath.Join(filepath.Dir(destination), "audio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.logger.Warn(ctx, "Failed to create audio dir: %v", err)
		return
	}
	dst := filepath.Join(dir, filepath.Base(audioPath))
	if err := moveFile(audioPath, dst); err != nil {
		p.logger.Warn(ctx, "Failed to keep audio %s: %v", audioPath, err)
	}
}

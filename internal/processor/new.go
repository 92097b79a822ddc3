package processor

import (
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/nguyentantai21042004/media-batch/internal/stt"
	"github.com/nguyentantai21042004/media-batch/internal/transcript"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
)

type implTranscoder struct {
	binary   string
	timeout  time.Duration
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Processor that transcodes each job through its profile
// stages with ffmpeg.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Processor {
	return newTranscoder(cfg, exec, log)
}

func newTranscoder(cfg *config.Config, exec executor.Executor, log logger.Logger) *implTranscoder {
	return &implTranscoder{
		binary:   cfg.FFmpeg.BinaryPath,
		timeout:  cfg.FFmpeg.Timeout,
		tempDir:  cfg.Paths.Temp,
		executor: exec,
		logger:   log,
	}
}

type implTranscriber struct {
	*implTranscoder
	provider   stt.Provider
	writer     transcript.Writer
	language   string
	minChars   int
	keepAudio  bool
	jobTimeout time.Duration
}

// NewTranscriber creates a Processor that extracts speech audio from each
// job source, transcribes it with provider and writes the result with w.
func NewTranscriber(cfg *config.Config, exec executor.Executor, provider stt.Provider, w transcript.Writer, log logger.Logger) Processor {
	return &implTranscriber{
		implTranscoder: newTranscoder(cfg, exec, log),
		provider:       provider,
		writer:         w,
		language:       cfg.Transcribe.Language,
		minChars:       cfg.Transcribe.MinLength(),
		keepAudio:      cfg.Transcribe.KeepAudio,
		jobTimeout:     cfg.Transcribe.Timeout,
	}
}

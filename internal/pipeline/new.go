package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/nguyentantai21042004/media-batch/internal/planner"
	"github.com/nguyentantai21042004/media-batch/internal/processor"
)

// Options describes one batch run.
type Options struct {
	InputDir   string
	Recursive  bool
	Extensions []string
	// Exclude lists directories the scan must not enter.
	Exclude []string
	Builder planner.Builder
	Workers int

	// Watch keeps processing files created in InputDir after the batch
	// finishes, until the context is cancelled.
	Watch  bool
	Settle time.Duration
}

type implPipeline struct {
	opts      Options
	processor processor.Processor
	logger    logger.Logger
}

// New creates a Pipeline feeding jobs to proc.
func New(opts Options, proc processor.Processor, log logger.Logger) Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &implPipeline{
		opts:      opts,
		processor: proc,
		logger:    log,
	}
}

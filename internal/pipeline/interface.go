package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/media-batch/internal/report"
)

// Pipeline runs one batch: scan, plan, process and tally.
type Pipeline interface {
	Run(ctx context.Context) (report.Stats, error)
}

package processor

import (
	"context"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

// Processor runs one job to completion and reports how it ended. It never
// returns an error; every failure is carried in the Result.
type Processor interface {
	Process(ctx context.Context, job model.Job) model.Result
}

package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

// runStages feeds job.Source through every profile stage. Intermediate
// outputs go to stageDir and the last stage writes finalOut. It returns nil
// when all stages produced non-empty output.
func (p *implTranscoder) runStages(ctx context.Context, job model.Job, stageDir, finalOut string) *model.Result {
	stages := job.Profile.Stages
	if len(stages) == 0 {
		res := model.Failed(job, fmt.Errorf("%w: profile %q has no stages", model.ErrJobFailed, job.Profile.Name))
		return &res
	}

	in := job.Source
	for i, st := range stages {
		out := finalOut
		if i < len(stages)-1 {
			out = filepath.Join(stageDir, fmt.Sprintf("%02d-%s%s", i, st.Name, st.Ext))
		}

		p.logger.Debug(ctx, "[%s] Stage %s: %s -> %s", shortID(job.ID), st.Name, in, out)

		if _, err := p.executor.Execute(ctx, p.binary, st.Args(in, out)...); err != nil {
			res := classify(ctx, job, st.Name, err)
			return &res
		}

		if fileSize(out) <= 0 {
			res := model.Failed(job, fmt.Errorf("%w: stage %s", model.ErrEmptyOutput, st.Name))
			return &res
		}

		in = out
	}

	return nil
}

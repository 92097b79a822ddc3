package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
)

const maxStderr = 300

// ffmpeg messages meaning the source lacks the requested stream
var noStreamMarkers = []string{
	"does not contain any stream",
	"matches no streams",
	"Output file #0 does not contain any stream",
}

// classify turns a failed invocation into a Result.
func classify(ctx context.Context, job model.Job, stage string, err error) model.Result {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return model.Failed(job, model.ErrTimeout)
	}
	if ctx.Err() != nil {
		return model.Failed(job, fmt.Errorf("%w: interrupted", model.ErrJobFailed))
	}

	var cmdErr *executor.CommandError
	if !errors.As(err, &cmdErr) {
		return model.Failed(job, fmt.Errorf("%w: stage %s: %v", model.ErrJobFailed, stage, err))
	}

	if noStream(cmdErr.Stderr) {
		return model.Result{
			Job:     job,
			Outcome: model.OutcomeNoTrack,
			Message: "source has no matching stream",
			Err:     model.ErrNoTrack,
		}
	}

	detail := truncate(cmdErr.Stderr, maxStderr)
	if detail == "" {
		detail = cmdErr.Err.Error()
	}
	return model.Failed(job, fmt.Errorf("%w: stage %s exited with code %d: %s", model.ErrJobFailed, stage, cmdErr.ExitCode, detail))
}

func noStream(stderr string) bool {
	for _, m := range noStreamMarkers {
		if strings.Contains(stderr, m) {
			return true
		}
	}
	return false
}

// truncate keeps the last n bytes of s, which is where ffmpeg puts the
// actual error.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	for len(s) > 0 && !utf8.RuneStart(s[0]) {
		s = s[1:]
	}
	return "..." + s
}

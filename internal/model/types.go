package model

import (
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/profile"
)

// Outcome tags the way a job ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeSkipped Outcome = "skipped"
	OutcomeNoTrack Outcome = "no-source-track"
)

// Job is one source-to-destination conversion unit. It is not modified after
// the planner creates it.
type Job struct {
	ID          string
	Source      string
	Destination string
	Profile     profile.Profile
}

// Result is what a processor reports for one job.
type Result struct {
	Job         Job
	Outcome     Outcome
	Message     string
	Err         error
	InputBytes  int64
	OutputBytes int64
	Duration    time.Duration
}

// Ratio returns output size as a percentage of input size, or 0 when sizes
// were not recorded.
func (r Result) Ratio() float64 {
	if r.InputBytes <= 0 {
		return 0
	}
	return float64(r.OutputBytes) * 100 / float64(r.InputBytes)
}

// Skipped builds the result for a job whose destination already exists.
func Skipped(job Job) Result {
	return Result{Job: job, Outcome: OutcomeSkipped, Message: "destination exists"}
}

// Failed builds a failure result carrying err.
func Failed(job Job, err error) Result {
	return Result{Job: job, Outcome: OutcomeFailure, Message: err.Error(), Err: err}
}

// Package report folds job results into run statistics and prints the
// end-of-run summary.
package report

import (
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

// Failure names a job that did not succeed.
type Failure struct {
	Source  string
	Message string
}

// Stats is the running tally of one batch.
type Stats struct {
	Total   int
	Success int
	Failed  int
	Skipped int
	NoTrack int

	InputBytes  int64
	OutputBytes int64

	Start time.Time
	End   time.Time

	Failures []Failure
}

// Processed counts jobs that reported an outcome.
func (s Stats) Processed() int {
	return s.Success + s.Failed + s.Skipped + s.NoTrack
}

// Pending counts jobs that never ran, which only happens after an interrupt.
func (s Stats) Pending() int {
	return s.Total - s.Processed()
}

// Ratio returns total output size as a percentage of total input size.
func (s Stats) Ratio() float64 {
	if s.InputBytes <= 0 {
		return 0
	}
	return float64(s.OutputBytes) * 100 / float64(s.InputBytes)
}

// SpaceSaved is positive when outputs are smaller than inputs.
func (s Stats) SpaceSaved() int64 {
	return s.InputBytes - s.OutputBytes
}

// Elapsed is the wall time from Start to End, or to now while running.
func (s Stats) Elapsed() time.Duration {
	end := s.End
	if end.IsZero() {
		end = time.Now()
	}
	if s.Start.IsZero() {
		return 0
	}
	return end.Sub(s.Start)
}

// Aggregator accumulates results. It is owned by a single goroutine.
type Aggregator struct {
	stats Stats
}

// NewAggregator starts a tally expecting total jobs.
func NewAggregator(total int) *Aggregator {
	return &Aggregator{stats: Stats{Total: total, Start: time.Now()}}
}

// Add folds one result into the tally.
func (a *Aggregator) Add(r model.Result) {
	switch r.Outcome {
	case model.OutcomeSuccess:
		a.stats.Success++
		a.stats.InputBytes += r.InputBytes
		a.stats.OutputBytes += r.OutputBytes
	case model.OutcomeSkipped:
		a.stats.Skipped++
	case model.OutcomeNoTrack:
		a.stats.NoTrack++
	default:
		a.stats.Failed++
		a.stats.Failures = append(a.stats.Failures, Failure{Source: r.Job.Source, Message: r.Message})
	}
}

// Grow raises the expected total, used when watch mode picks up new files.
func (a *Aggregator) Grow(n int) {
	a.stats.Total += n
}

// Finish stamps the end time and returns the final stats.
func (a *Aggregator) Finish() Stats {
	a.stats.End = time.Now()
	return a.Stats()
}

// Stats returns a snapshot of the tally.
func (a *Aggregator) Stats() Stats {
	s := a.stats
	s.Failures = append([]Failure(nil), a.stats.Failures...)
	return s
}

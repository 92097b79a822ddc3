package pool

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

func makeJobs(n int) []model.Job {
	jobs := make([]model.Job, n)
	for i := range jobs {
		jobs[i] = model.Job{ID: fmt.Sprint(i), Source: fmt.Sprintf("f%02d", i)}
	}
	return jobs
}

func succeed(_ context.Context, job model.Job) model.Result {
	return model.Result{Job: job, Outcome: model.OutcomeSuccess}
}

func drain(ch <-chan model.Result) []model.Result {
	var out []model.Result
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestRunSequentialOrder(t *testing.T) {
	jobs := makeJobs(10)
	results := drain(Run(context.Background(), jobs, 1, succeed))

	var got []string
	for _, r := range results {
		got = append(got, r.Job.ID)
	}
	var want []string
	for _, j := range jobs {
		want = append(want, j.ID)
	}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	const workers = 3
	var running, peak atomic.Int32

	fn := func(ctx context.Context, job model.Job) model.Result {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return succeed(ctx, job)
	}

	results := drain(Run(context.Background(), makeJobs(20), workers, fn))
	if len(results) != 20 {
		t.Fatalf("results = %d, want 20", len(results))
	}
	if peak.Load() > workers {
		t.Errorf("peak concurrency %d exceeds %d", peak.Load(), workers)
	}
}

func TestRunTalliesIndependentOfWorkers(t *testing.T) {
	fn := func(ctx context.Context, job model.Job) model.Result {
		if job.Source[len(job.Source)-1]%2 == 0 {
			return model.Failed(job, model.ErrJobFailed)
		}
		return succeed(ctx, job)
	}

	count := func(n int) map[model.Outcome]int {
		m := map[model.Outcome]int{}
		for _, r := range drain(Run(context.Background(), makeJobs(15), n, fn)) {
			m[r.Outcome]++
		}
		return m
	}

	seq, par := count(1), count(4)
	if seq[model.OutcomeSuccess] != par[model.OutcomeSuccess] || seq[model.OutcomeFailure] != par[model.OutcomeFailure] {
		t.Errorf("sequential %v != parallel %v", seq, par)
	}
}

func TestRunPanicIsolated(t *testing.T) {
	fn := func(ctx context.Context, job model.Job) model.Result {
		if job.ID == "2" {
			panic("boom")
		}
		return succeed(ctx, job)
	}

	results := drain(Run(context.Background(), makeJobs(5), 2, fn))
	if len(results) != 5 {
		t.Fatalf("results = %d, want 5", len(results))
	}
	failed := 0
	for _, r := range results {
		if r.Outcome == model.OutcomeFailure {
			failed++
			if r.Job.ID != "2" || !errors.Is(r.Err, model.ErrJobFailed) {
				t.Errorf("unexpected failure %+v", r)
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}

func TestRunCancelStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	fn := func(ctx context.Context, job model.Job) model.Result {
		once.Do(cancel)
		return succeed(ctx, job)
	}

	results := drain(Run(ctx, makeJobs(50), 1, fn))
	if len(results) >= 50 {
		t.Errorf("results = %d, dispatch should stop after cancel", len(results))
	}
	if len(results) < 1 {
		t.Error("the running job should still report")
	}
}

func TestRunEmptyAndZeroWorkers(t *testing.T) {
	if got := drain(Run(context.Background(), nil, 4, succeed)); len(got) != 0 {
		t.Errorf("results = %d, want 0", len(got))
	}
	if got := drain(Run(context.Background(), makeJobs(3), 0, succeed)); len(got) != 3 {
		t.Errorf("results = %d, want 3", len(got))
	}
}

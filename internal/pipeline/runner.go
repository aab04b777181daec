package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fotline/internal/config"
	"fotline/internal/errors"
	"fotline/internal/notify"
)

// step couples a step name with its implementation.
type step struct {
	name string
	fn   func(ctx context.Context, art *Artifacts) error
}

// Runner executes the payroll analysis pipeline: three concurrent extracts,
// then transform, load, report and notify strictly in sequence. A failed
// step aborts the run and its dependents never start.
type Runner struct {
	cfg      *config.Config
	notifier *notify.Notifier
	recorder Recorder
	policy   RetryPolicy

	mu      sync.Mutex
	running bool

	stateMu sync.Mutex
}

// NewRunner creates a runner with the retry policy taken from configuration.
func NewRunner(cfg *config.Config, notifier *notify.Notifier, recorder Recorder) *Runner {
	return &Runner{
		cfg:      cfg,
		notifier: notifier,
		recorder: recorder,
		policy:   RetryPolicy{Attempts: cfg.RetryCount, Delay: cfg.RetryDelay},
	}
}

// Run executes the whole pipeline once. Only one run may be in flight at a
// time; a second request fails with ErrRunInProgress. The returned Run
// carries per-step outcomes even when the pipeline fails.
func (r *Runner) Run(ctx context.Context) (*Run, error) {
	if !r.begin() {
		return nil, errors.ErrRunInProgress
	}
	defer r.end()

	run := &Run{
		ID:        uuid.New(),
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	art := &Artifacts{RunID: run.ID, RunDate: run.StartedAt}

	extracts := []step{
		{StepExtractEmployees, r.extractEmployees},
		{StepExtractProjects, r.extractProjects},
		{StepExtractRates, r.extractRates},
	}
	sequential := []step{
		{StepTransform, r.transform},
		{StepLoad, r.load},
		{StepReport, r.generateReport},
		{StepNotify, r.notify},
	}
	for _, s := range append(extracts, sequential...) {
		run.Steps = append(run.Steps, StepResult{Name: s.name, Status: StatusPending})
	}

	log.Printf("run %s: starting payroll analysis", run.ID)
	r.record(ctx, run)

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range extracts {
		g.Go(func() error {
			return r.runStep(gctx, run, s, art)
		})
	}
	if err := g.Wait(); err != nil {
		return r.fail(ctx, run, err)
	}

	for _, s := range sequential {
		if err := r.runStep(ctx, run, s, art); err != nil {
			return r.fail(ctx, run, err)
		}
	}

	r.stateMu.Lock()
	run.Status = StatusSuccess
	run.FinishedAt = time.Now()
	run.Projects = len(art.Totals)
	r.stateMu.Unlock()
	r.record(ctx, run)
	log.Printf("run %s: finished, %d projects analyzed", run.ID, len(art.Totals))
	return run, nil
}

// runStep executes one step under the retry policy and records its outcome.
func (r *Runner) runStep(ctx context.Context, run *Run, s step, art *Artifacts) error {
	r.updateStep(run, s.name, func(sr *StepResult) {
		sr.Status = StatusRunning
		sr.StartedAt = time.Now()
	})
	r.record(ctx, run)

	var err error
	attempts := 0
	for {
		attempts++
		if err = s.fn(ctx, art); err == nil || attempts > r.policy.Attempts {
			break
		}
		log.Printf("step %s: attempt %d/%d failed: %v, retrying in %s",
			s.name, attempts, r.policy.Attempts+1, err, r.policy.Delay)
		select {
		case <-time.After(r.policy.Delay):
		case <-ctx.Done():
			err = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}

	r.updateStep(run, s.name, func(sr *StepResult) {
		sr.Attempts = attempts
		sr.FinishedAt = time.Now()
		if err != nil {
			sr.Status = StatusFailed
			sr.Error = err.Error()
		} else {
			sr.Status = StatusSuccess
		}
	})
	r.record(ctx, run)

	if err != nil {
		return fmt.Errorf("step %s: %w", s.name, err)
	}
	return nil
}

// fail finalizes a failed run: pending steps are skipped, the run record is
// stored, and a best-effort failure notification goes out.
func (r *Runner) fail(ctx context.Context, run *Run, err error) (*Run, error) {
	r.stateMu.Lock()
	run.Status = StatusFailed
	run.FinishedAt = time.Now()
	for i := range run.Steps {
		if run.Steps[i].Status == StatusPending {
			run.Steps[i].Status = StatusSkipped
		}
	}
	r.stateMu.Unlock()
	r.record(ctx, run)

	log.Printf("run %s: failed: %v", run.ID, err)
	r.notifier.NotifyFailure(ctx, run.ID, err)
	return run, err
}

func (r *Runner) updateStep(run *Run, name string, fn func(sr *StepResult)) {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	for i := range run.Steps {
		if run.Steps[i].Name == name {
			fn(&run.Steps[i])
			return
		}
	}
}

// record hands a stable snapshot of the run to the recorder.
func (r *Runner) record(ctx context.Context, run *Run) {
	if r.recorder == nil {
		return
	}
	r.stateMu.Lock()
	snapshot := *run
	snapshot.Steps = make([]StepResult, len(run.Steps))
	copy(snapshot.Steps, run.Steps)
	r.stateMu.Unlock()
	r.recorder.RecordRun(ctx, &snapshot)
}

func (r *Runner) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) end() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

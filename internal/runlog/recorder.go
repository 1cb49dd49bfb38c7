// Package runlog persists the outcome of query runs to Postgres.
package runlog

import (
	"context"
	"log"
	"time"

	"bookstore/internal/queries"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

const defaultWriteTimeout = 5 * time.Second

// Recorder writes one query_runs row per run and one query_run_steps row per
// step. Write failures are logged and never reach the query sequence.
//
// Writes outlive cancellation of the run: a run interrupted by a signal still
// records the step that failed and closes its query_runs row. Each write is
// bounded by the write timeout instead.
type Recorder struct {
	repo    Repository
	profile string
	timeout time.Duration
	run     *Run
}

func NewRecorder(repo Repository, profile string) *Recorder {
	return &Recorder{repo: repo, profile: profile, timeout: defaultWriteTimeout}
}

func (r *Recorder) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
}

func (r *Recorder) RunStarted(ctx context.Context, rep *queries.Report) {
	run := &Run{
		ID:        rep.RunID,
		Profile:   r.profile,
		StartedAt: rep.StartedAt,
		Status:    StatusRunning,
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	if err := r.repo.CreateRun(ctx, run); err != nil {
		log.Printf("Failed to create query run %s: %v", run.ID, err)
		r.run = nil
		return
	}
	r.run = run
}

func (r *Recorder) StepFinished(ctx context.Context, rep *queries.Report, step queries.StepResult) {
	if r.run == nil {
		return
	}
	r.insertStep(ctx, len(rep.Steps), step)
}

func (r *Recorder) RunFinished(ctx context.Context, rep *queries.Report) {
	if r.run == nil {
		return
	}
	for i, s := range rep.Steps {
		if s.Status == queries.StatusSkipped {
			r.insertStep(ctx, i+1, s)
		}
	}

	finished := rep.FinishedAt
	r.run.FinishedAt = &finished
	r.run.StepsOK = rep.Count(queries.StatusOK)
	r.run.StepsTotal = len(rep.Steps)
	r.run.Status = StatusCompleted
	if failed, ok := rep.Failed(); ok {
		r.run.Status = StatusFailed
		r.run.Error = failed.Name + ": " + failed.Err.Error()
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	if err := r.repo.UpdateRun(ctx, r.run); err != nil {
		log.Printf("Failed to update query run %s: %v", r.run.ID, err)
	}
}

func (r *Recorder) insertStep(ctx context.Context, position int, s queries.StepResult) {
	step := &Step{
		RunID:      r.run.ID,
		Position:   position,
		Phase:      s.Phase,
		Name:       s.Name,
		Status:     string(s.Status),
		DurationMS: s.Duration.Milliseconds(),
	}
	if s.Err != nil {
		step.Error = s.Err.Error()
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	if err := r.repo.InsertStep(ctx, step); err != nil {
		log.Printf("Failed to record step %s of run %s: %v", s.Name, r.run.ID, err)
	}
}

var _ queries.Observer = (*Recorder)(nil)

package queries

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Step is one named operation of the sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Phase groups steps under a heading.
type Phase struct {
	Title string
	Steps []Step
}

type StepResult struct {
	Phase    string
	Name     string
	Status   Status
	Duration time.Duration
	Err      error
}

// Report records the outcome of every step of one RunAll.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []StepResult
}

// Failed returns the step that aborted the run, if any.
func (rep *Report) Failed() (StepResult, bool) {
	for _, s := range rep.Steps {
		if s.Status == StatusFailed {
			return s, true
		}
	}
	return StepResult{}, false
}

func (rep *Report) Count(status Status) int {
	n := 0
	for _, s := range rep.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Print writes a one-line-per-step summary.
func (rep *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "\nRun %s: %d ok, %d failed, %d skipped\n",
		rep.RunID, rep.Count(StatusOK), rep.Count(StatusFailed), rep.Count(StatusSkipped))
	for _, s := range rep.Steps {
		line := fmt.Sprintf("  [%-7s] %-26s %s", s.Status, s.Name, s.Duration.Round(time.Millisecond))
		if s.Err != nil {
			line += " error=" + s.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
}

// Limiter paces the start of each step.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Observer is notified as a run progresses. Observers handle their own
// failures; they cannot abort the run.
type Observer interface {
	RunStarted(ctx context.Context, rep *Report)
	StepFinished(ctx context.Context, rep *Report, step StepResult)
	RunFinished(ctx context.Context, rep *Report)
}

type Option func(*Runner)

// WithRate limits the sequence to perSecond operations per second. Zero or
// less means unlimited.
func WithRate(perSecond float64) Option {
	return func(r *Runner) {
		if perSecond > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithLimiter(l Limiter) Option {
	return func(r *Runner) { r.limiter = l }
}

func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

func discard[T any](f func(context.Context) (T, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := f(ctx)
		return err
	}
}

// Phases returns the fifteen operations in run order.
func (r *Runner) Phases() []Phase {
	return []Phase{
		{Title: "BASIC CRUD OPERATIONS", Steps: []Step{
			{Name: "find_by_genre", Run: discard(r.FindByGenre)},
			{Name: "find_published_after", Run: discard(r.FindPublishedAfter)},
			{Name: "find_by_author", Run: discard(r.FindByAuthor)},
			{Name: "update_price", Run: discard(r.UpdatePrice)},
			{Name: "insert_and_delete", Run: discard(r.InsertAndDelete)},
		}},
		{Title: "ADVANCED QUERIES", Steps: []Step{
			{Name: "find_in_stock_after", Run: discard(r.FindInStockAfter)},
			{Name: "find_with_projection", Run: discard(r.FindWithProjection)},
			{Name: "sort_by_price", Run: discard(r.SortByPrice)},
			{Name: "paginate", Run: discard(r.Paginate)},
		}},
		{Title: "AGGREGATION PIPELINES", Steps: []Step{
			{Name: "average_price_by_genre", Run: discard(r.AveragePriceByGenre)},
			{Name: "top_author", Run: discard(r.TopAuthor)},
			{Name: "group_by_decade", Run: discard(r.GroupByDecade)},
		}},
		{Title: "INDEXING", Steps: []Step{
			{Name: "create_title_index", Run: discard(r.CreateTitleIndex)},
			{Name: "create_author_year_index", Run: discard(r.CreateAuthorYearIndex)},
			{Name: "explain_title_query", Run: discard(r.ExplainTitleQuery)},
		}},
	}
}

// RunAll runs every phase in order, one step at a time. The first failing
// step stops the run; the steps after it are reported as skipped. The
// returned report is never nil.
func (r *Runner) RunAll(ctx context.Context) (*Report, error) {
	return r.run(ctx, r.Phases())
}

func (r *Runner) run(ctx context.Context, phases []Phase) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), StartedAt: time.Now()}
	for _, o := range r.observers {
		o.RunStarted(ctx, rep)
	}

	r.printf("Starting MongoDB bookstore queries (run %s)\n", rep.RunID)

	var runErr error
	for _, phase := range phases {
		if runErr == nil {
			r.printf("\n%s\n", phase.Title)
		}
		for _, step := range phase.Steps {
			res := StepResult{Phase: phase.Title, Name: step.Name}
			if runErr != nil {
				res.Status = StatusSkipped
				rep.Steps = append(rep.Steps, res)
				continue
			}

			start := time.Now()
			err := r.runStep(ctx, step)
			res.Duration = time.Since(start)
			if err != nil {
				res.Status = StatusFailed
				res.Err = err
				runErr = fmt.Errorf("%s: %w", step.Name, err)
			} else {
				res.Status = StatusOK
			}
			rep.Steps = append(rep.Steps, res)
			for _, o := range r.observers {
				o.StepFinished(ctx, rep, res)
			}
		}
	}

	rep.FinishedAt = time.Now()
	for _, o := range r.observers {
		o.RunFinished(ctx, rep)
	}

	if runErr != nil {
		log.Printf("query run %s aborted: %v", rep.RunID, runErr)
		return rep, runErr
	}
	r.printf("\nAll queries completed successfully!\n")
	return rep, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return step.Run(ctx)
}

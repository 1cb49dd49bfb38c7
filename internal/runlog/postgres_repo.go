package runlog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	InsertStep(ctx context.Context, step *Step) error
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO query_runs (id, profile, status, started_at)
		VALUES ($1, $2, $3, $4)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(timeoutCtx, sql, run.ID, run.Profile, run.Status, run.StartedAt)
	return err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE query_runs SET
			finished_at = $1,
			status = $2,
			steps_ok = $3,
			steps_total = $4,
			error = $5
		WHERE id = $6`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(timeoutCtx, sql, run.FinishedAt, run.Status, run.StepsOK, run.StepsTotal, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) InsertStep(ctx context.Context, step *Step) error {
	const sql = `
		INSERT INTO query_run_steps (run_id, position, phase, name, status, duration_ms, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(timeoutCtx, sql, step.RunID, step.Position, step.Phase, step.Name, step.Status, step.DurationMS, step.Error)
	return err
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/jmoiron/sqlx"
)

type JobLogRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewJobLogRepository(db *sqlx.DB) *JobLogRepository {
	return &JobLogRepository{db: db, now: time.Now}
}

// Start records a job as in progress and returns its id.
func (r *JobLogRepository) Start(ctx context.Context, name, description string, kind models.EntityKind) (int64, error) {
	const query = `
		INSERT INTO job_log (name, description, status, entity_kind, start_time)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		name, description, models.JobStatusInProgress, kind, r.now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("exec Start: %w", err)
	}
	return id, nil
}

// Complete stamps the end time and final status of a job.
func (r *JobLogRepository) Complete(ctx context.Context, id int64, status models.JobStatus) error {
	const query = `UPDATE job_log SET status = ?, end_time = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), status, r.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("exec Complete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("exec Complete: job %d not found", id)
	}
	return nil
}

// FindRecent returns the latest jobs, newest first.
func (r *JobLogRepository) FindRecent(ctx context.Context, limit int) ([]models.JobLog, error) {
	const query = `
		SELECT id, name, description, status, entity_kind, start_time, end_time
		FROM job_log
		ORDER BY start_time DESC, id DESC
		LIMIT ?
	`

	jobs := []models.JobLog{}
	if err := r.db.SelectContext(ctx, &jobs, r.db.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("query FindRecent: %w", err)
	}
	return jobs, nil
}

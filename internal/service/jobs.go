package service

import (
	"context"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository/models"
	"go.uber.org/zap"
)

// JobRunner runs a unit of work and records it in the job log.
type JobRunner struct {
	store  JobStore
	logger *zap.Logger
}

func NewJobRunner(store JobStore, logger *zap.Logger) *JobRunner {
	if store == nil {
		panic("job store must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &JobRunner{store: store, logger: logger.Named("jobs")}
}

// Run records the job as in progress, runs fn and stamps SUCCESS or FAILURE.
// The error of fn is returned unchanged.
func (r *JobRunner) Run(ctx context.Context, name, description string, kind models.EntityKind, fn func(ctx context.Context) error) error {
	id, err := r.store.Start(ctx, name, description, kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	r.logger.Info("job started", zap.Int64("job_id", id), zap.String("name", name))

	runErr := fn(ctx)

	status := models.JobStatusSuccess
	if runErr != nil {
		status = models.JobStatusFailure
	}
	if err := r.store.Complete(context.WithoutCancel(ctx), id, status); err != nil {
		r.logger.Error("failed to complete job", zap.Int64("job_id", id), zap.Error(err))
		if runErr == nil {
			return fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
	}

	if runErr != nil {
		r.logger.Error("job failed", zap.Int64("job_id", id), zap.String("name", name), zap.Error(runErr))
		return runErr
	}
	r.logger.Info("job finished", zap.Int64("job_id", id), zap.String("name", name))
	return nil
}

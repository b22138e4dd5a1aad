package slog

import (
	"context"
	"log/slog"

	"github.com/tszym/jobharvest"
)

// Ensure LoggingJobService implements jobharvest.JobService at compile time.
var _ jobharvest.JobService = (*LoggingJobService)(nil)

// LoggingJobService wraps a JobService with logging of state transitions.
// It gives the operator a plain trail of which job moved to which state
// without digging into the database.
type LoggingJobService struct {
	next   jobharvest.JobService
	logger *slog.Logger
}

// NewLoggingJobService creates a new LoggingJobService.
func NewLoggingJobService(next jobharvest.JobService, logger *slog.Logger) *LoggingJobService {
	return &LoggingJobService{next: next, logger: logger}
}

// CreateJob delegates to the wrapped service and logs the created job.
func (s *LoggingJobService) CreateJob(ctx context.Context, job *jobharvest.Job) error {
	if err := s.next.CreateJob(ctx, job); err != nil {
		return err
	}
	s.logger.Info("job created", "id", job.ID, "url", job.URL)
	return nil
}

// FindJobByID delegates to the wrapped service.
func (s *LoggingJobService) FindJobByID(ctx context.Context, id string) (*jobharvest.Job, error) {
	return s.next.FindJobByID(ctx, id)
}

// FindJobs delegates to the wrapped service.
func (s *LoggingJobService) FindJobs(ctx context.Context, filter jobharvest.JobFilter) ([]*jobharvest.Job, error) {
	return s.next.FindJobs(ctx, filter)
}

// UpdateJob delegates to the wrapped service and logs state transitions.
func (s *LoggingJobService) UpdateJob(ctx context.Context, id string, upd jobharvest.JobUpdate) (*jobharvest.Job, error) {
	job, err := s.next.UpdateJob(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if upd.State != nil {
		s.logger.Info("job state changed",
			"id", id,
			"state", string(job.State),
			"attempts", job.AttemptCount,
		)
	}
	return job, nil
}

// DeleteJob delegates to the wrapped service and logs the deletion.
func (s *LoggingJobService) DeleteJob(ctx context.Context, id string) error {
	if err := s.next.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.logger.Info("job deleted", "id", id)
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/tszym/jobharvest"
)

// Compile-time interface verification.
var _ jobharvest.JobService = (*JobService)(nil)

// JobService implements jobharvest.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateJob creates a new job in the unprocessed state.
func (s *JobService) CreateJob(ctx context.Context, job *jobharvest.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.State = jobharvest.JobUnprocessed
	job.CreatedAt = time.Now().UTC()
	job.ContentHash = hashContent(job.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, url, title, state, content, content_hash, strategy, last_error, last_attempt_at, attempt_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.URL, job.Title, string(job.State), job.Content, job.ContentHash,
		string(job.Strategy), job.LastError, formatAttemptTime(job.LastAttemptAt),
		job.AttemptCount, job.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return jobharvest.Errorf(jobharvest.EINVALID, "job already exists for URL: %s", job.URL)
	}

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*jobharvest.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, state, content, content_hash, strategy, last_error, last_attempt_at, attempt_count, created_at
		FROM jobs
		WHERE id = ?
	`, id)

	job, err := scanJob(row.Scan)
	if err == sql.ErrNoRows {
		return nil, jobharvest.Errorf(jobharvest.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}

	return job, nil
}

// FindJobs retrieves jobs matching the filter.
func (s *JobService) FindJobs(ctx context.Context, filter jobharvest.JobFilter) ([]*jobharvest.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, state, content, content_hash, strategy, last_error, last_attempt_at, attempt_count, created_at FROM jobs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.State != nil {
		query.WriteString(" AND state = ?")
		args = append(args, string(*filter.State))
	}
	if filter.NeedsExtraction {
		query.WriteString(" AND state NOT IN (?, ?, ?)")
		args = append(args,
			string(jobharvest.JobSucceeded),
			string(jobharvest.JobValidationFailed),
			string(jobharvest.JobExhausted))

		// A blank last_attempt_at marks a job no run has touched yet.
		if !filter.IncludeRetried {
			query.WriteString(" AND last_attempt_at = ''")
		}
	}

	// rowid breaks ties between jobs created within the same second.
	query.WriteString(" ORDER BY created_at ASC, rowid ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*jobharvest.Job
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// UpdateJob updates an existing job.
func (s *JobService) UpdateJob(ctx context.Context, id string, upd jobharvest.JobUpdate) (*jobharvest.Job, error) {
	// First check if job exists
	job, err := s.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.State != nil {
		job.State = *upd.State
	}
	if upd.Content != nil {
		job.Content = *upd.Content
		job.ContentHash = hashContent(job.Content)
	}
	if upd.Strategy != nil {
		job.Strategy = *upd.Strategy
	}
	if upd.LastError != nil {
		job.LastError = *upd.LastError
	}
	if upd.LastAttemptAt != nil {
		job.LastAttemptAt = *upd.LastAttemptAt
	}
	if upd.AttemptCount != nil {
		job.AttemptCount = *upd.AttemptCount
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE jobs
		SET state = ?, content = ?, content_hash = ?, strategy = ?, last_error = ?, last_attempt_at = ?, attempt_count = ?
		WHERE id = ?
	`, string(job.State), job.Content, job.ContentHash, string(job.Strategy),
		job.LastError, formatAttemptTime(job.LastAttemptAt), job.AttemptCount, id)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// DeleteJob permanently removes a job.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return jobharvest.Errorf(jobharvest.ENOTFOUND, "job not found")
	}

	return nil
}

// scanJob reads one jobs row using the provided scan function, which
// works for both sql.Row and sql.Rows.
func scanJob(scan func(dest ...any) error) (*jobharvest.Job, error) {
	var job jobharvest.Job
	var state, strategy, lastAttemptAt, createdAt string

	if err := scan(&job.ID, &job.URL, &job.Title, &state, &job.Content, &job.ContentHash,
		&strategy, &job.LastError, &lastAttemptAt, &job.AttemptCount, &createdAt); err != nil {
		return nil, err
	}

	job.State = jobharvest.JobState(state)
	job.Strategy = jobharvest.Strategy(strategy)

	var err error
	job.LastAttemptAt, err = parseAttemptTime(lastAttemptAt)
	if err != nil {
		return nil, err
	}
	job.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &job, nil
}

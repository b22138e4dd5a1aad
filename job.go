package jobharvest

import (
	"context"
	"time"
)

// JobState describes where a job sits in the extraction lifecycle.
// Transitions only move forward: unprocessed → attempted → one of the
// terminal states. A terminal job never returns to an earlier state.
type JobState string

// Job lifecycle states.
const (
	JobUnprocessed      JobState = "unprocessed"
	JobAttempted        JobState = "attempted"
	JobSucceeded        JobState = "succeeded"
	JobValidationFailed JobState = "validation_failed"
	JobExhausted        JobState = "exhausted"
)

// Terminal returns true if the state is final for a run.
func (s JobState) Terminal() bool {
	switch s {
	case JobSucceeded, JobValidationFailed, JobExhausted:
		return true
	}
	return false
}

// Job represents one unit of extraction work: a single job-posting page.
//
// Content always holds the text from the most recent attempt, including
// partial or rejected text, so diagnostics reflect the latest try.
// AttemptCount is monotonic and never reset within a run.
type Job struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	State         JobState  `json:"state"`
	Content       string    `json:"content"`
	ContentHash   string    `json:"contentHash"`
	Strategy      Strategy  `json:"strategy"`
	LastError     string    `json:"lastError"`
	LastAttemptAt time.Time `json:"lastAttemptAt"`
	AttemptCount  int       `json:"attemptCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.URL == "" {
		return Errorf(EINVALID, "job URL required")
	}
	return nil
}

// Retried reports whether the job has ever been through the retry path.
// A zero LastAttemptAt means the job has never been attempted by any run.
func (j *Job) Retried() bool {
	return !j.LastAttemptAt.IsZero()
}

// JobService represents a service for managing jobs.
type JobService interface {
	// CreateJob creates a new job in the unprocessed state.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// UpdateJob updates an existing job.
	// Returns ENOTFOUND if the job does not exist.
	UpdateJob(ctx context.Context, id string, upd JobUpdate) (*Job, error)

	// DeleteJob permanently removes a job.
	// Returns ENOTFOUND if the job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID    *string   `json:"id"`
	URL   *string   `json:"url"`
	State *JobState `json:"state"`

	// NeedsExtraction selects jobs not yet in a terminal state.
	NeedsExtraction bool `json:"needsExtraction"`

	// IncludeRetried, when false and NeedsExtraction is set, excludes jobs
	// with a prior attempt timestamp, so budget is not spent again on items
	// already shown unresponsive in earlier runs.
	IncludeRetried bool `json:"includeRetried"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// JobUpdate represents fields that can be updated on a job.
// Every attempt, successful or not, writes Content, LastError and
// LastAttemptAt so later runs can distinguish "never tried" from
// "tried and failed" from "succeeded".
type JobUpdate struct {
	State         *JobState  `json:"state"`
	Content       *string    `json:"content"`
	Strategy      *Strategy  `json:"strategy"`
	LastError     *string    `json:"lastError"`
	LastAttemptAt *time.Time `json:"lastAttemptAt"`
	AttemptCount  *int       `json:"attemptCount"`
}

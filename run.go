package jobharvest

import (
	"context"
	"time"
)

// RunConfig holds the immutable configuration for one extraction run.
// It is read once at startup and never changes for the run's duration.
type RunConfig struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// NavTimeout bounds navigation to minimal document readiness. Expiry
	// is fatal for the page load.
	NavTimeout time.Duration

	// SettleTimeout bounds the secondary wait for full page load. Expiry
	// is advisory: logged and ignored.
	SettleTimeout time.Duration

	// MaxRetries is the per-item attempt budget (K).
	MaxRetries int

	// RetryDelay is the pause between attempts on the same item.
	RetryDelay time.Duration

	// BatchSize bounds both batch length and in-flight parallelism.
	BatchSize int

	// BatchDelay is the pause between batches.
	BatchDelay time.Duration

	// IncludeRetried includes jobs that already carry a prior-run attempt
	// timestamp. Excluded by default.
	IncludeRetried bool

	// RPS is the per-domain page-load rate limit.
	RPS float64

	// SnapshotDir, when set, receives diagnostic screenshots of pages
	// whose content failed validation.
	SnapshotDir string

	// Validator holds the content-quality thresholds.
	Validator ValidatorConfig
}

// DefaultRunConfig returns a RunConfig with production defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Headless:       true,
		NavTimeout:     30 * time.Second,
		SettleTimeout:  10 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		BatchSize:      5,
		BatchDelay:     3 * time.Second,
		IncludeRetried: false,
		RPS:            1.0,
		Validator:      DefaultValidatorConfig(),
	}
}

// RunSummary aggregates the outcome of one run.
type RunSummary struct {
	Processed int           `json:"processed"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`

	// HaltedEarly is true when the circuit breaker stopped the run before
	// the work queue was exhausted.
	HaltedEarly bool `json:"haltedEarly"`

	// HaltReason carries the breaker's reason when HaltedEarly is true.
	HaltReason string `json:"haltReason,omitempty"`
}

// ReportStatus is the operator-facing final status of a processed job.
type ReportStatus string

// Report statuses.
const (
	ReportSuccess          ReportStatus = "success"
	ReportValidationFailed ReportStatus = "validation_failed"
	ReportFailed           ReportStatus = "failed"
)

// ReportRow is one line of the operator-facing audit trail.
type ReportRow struct {
	JobID   string
	Title   string
	Status  ReportStatus
	Elapsed time.Duration
	Error   string
}

// ReportWriter records the audit trail of a run, one row per processed job.
type ReportWriter interface {
	WriteRow(ctx context.Context, row ReportRow) error
	Close() error
}

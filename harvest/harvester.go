// Package harvest provides extraction-run orchestration. It coordinates
// page loading, fallback strategy extraction, content validation, retry
// bookkeeping and the run-wide circuit breaker, and persists every
// outcome so interrupted runs stay resumable.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tszym/jobharvest"
	"golang.org/x/sync/errgroup"
)

// Harvester processes pending jobs in bounded batches.
type Harvester struct {
	Jobs      jobharvest.JobService
	Loader    jobharvest.Loader
	Extractor jobharvest.Extractor
	Validator jobharvest.Validator

	// Reports, if set, receives one audit row per processed job.
	Reports jobharvest.ReportWriter

	// Limiter, if set, paces page loads per domain.
	Limiter jobharvest.Limiter

	// Breaker is the run-wide fatal-error latch. A fresh one is created
	// when nil.
	Breaker *Breaker

	Logger *slog.Logger

	Config jobharvest.RunConfig

	succeeded atomic.Int64
	failed    atomic.Int64
}

// Run selects jobs needing extraction and processes them in fixed-size
// batches until the queue is exhausted, the context is canceled, or the
// circuit breaker latches. The summary is returned in every case; a
// non-nil error accompanies it when the run halted early.
//
// Each job's persisted update is independent and idempotent, and item
// persistence survives cancellation, so an interrupted run leaves no
// ambiguous state.
func (h *Harvester) Run(ctx context.Context) (*jobharvest.RunSummary, error) {
	start := time.Now()

	if h.Breaker == nil {
		h.Breaker = NewBreaker()
	}
	h.succeeded.Store(0)
	h.failed.Store(0)

	batchSize := h.Config.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	jobs, err := h.Jobs.FindJobs(ctx, jobharvest.JobFilter{
		NeedsExtraction: true,
		IncludeRetried:  h.Config.IncludeRetried,
	})
	if err != nil {
		return nil, fmt.Errorf("selecting jobs: %w", err)
	}

	h.logger().Info("run started",
		"pending", len(jobs),
		"batch_size", batchSize,
		"include_retried", h.Config.IncludeRetried,
	)

	var processed int64
	for batchStart := 0; batchStart < len(jobs); batchStart += batchSize {
		if h.Breaker.Tripped() || ctx.Err() != nil {
			break
		}

		end := batchStart + batchSize
		if end > len(jobs) {
			end = len(jobs)
		}

		g := &errgroup.Group{}
		g.SetLimit(batchSize)
		for _, job := range jobs[batchStart:end] {
			if h.Breaker.Tripped() || ctx.Err() != nil {
				break
			}
			job := job
			g.Go(func() error {
				// A queued item may have been waiting on a slot when the
				// breaker latched; it must not enter the attempted state.
				if h.Breaker.Tripped() {
					return nil
				}
				atomic.AddInt64(&processed, 1)
				h.processJob(ctx, job)
				return nil
			})
		}
		_ = g.Wait()

		if end < len(jobs) && !h.Breaker.Tripped() {
			select {
			case <-ctx.Done():
			case <-time.After(h.Config.BatchDelay):
			}
		}
	}

	summary := &jobharvest.RunSummary{
		Processed:   int(processed),
		Succeeded:   int(h.succeeded.Load()),
		Failed:      int(h.failed.Load()),
		Elapsed:     time.Since(start),
		HaltedEarly: h.Breaker.Tripped(),
		HaltReason:  h.Breaker.Reason(),
	}

	h.logger().Info("run finished",
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed,
		"halted_early", summary.HaltedEarly,
	)

	if summary.HaltedEarly {
		return summary, jobharvest.Errorf(jobharvest.ClassCode(jobharvest.Classify(summary.HaltReason)),
			"run halted: %s — resolve the upstream condition before retrying", summary.HaltReason)
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// processJob runs the per-item attempt budget for one job and records the
// final outcome. Fatal quota/auth errors latch the breaker; the item's own
// bookkeeping is still persisted before the run stops.
func (h *Harvester) processJob(ctx context.Context, job *jobharvest.Job) {
	itemStart := time.Now()

	var outcome jobharvest.ReportStatus

	err := Attempt(ctx, h.Config.MaxRetries, h.Config.RetryDelay, func(ctx context.Context, attempt int) error {
		status, err := h.attemptOnce(ctx, job, attempt)
		if err != nil {
			return err
		}
		outcome = status
		return nil
	}, func(format string, args ...any) {
		h.logger().Warn(fmt.Sprintf("job %s:"+format, append([]any{job.ID}, args...)...))
	})

	switch {
	case err == nil:
		// outcome already set by the successful attempt
	case jobharvest.ClassifyErr(err).Fatal():
		h.Breaker.Trip(err.Error())
		h.logger().Error("fatal upstream condition, halting run", "job", job.ID, "err", err)
		outcome = jobharvest.ReportFailed
	case ctx.Err() != nil:
		// Interrupted between attempts; the last attempt's record is
		// already persisted, leave the item non-terminal for the next run.
		return
	default:
		// Budget exhausted on transient failures.
		h.recordTerminal(ctx, job, jobharvest.JobExhausted)
		outcome = jobharvest.ReportFailed
	}

	if outcome == jobharvest.ReportSuccess {
		h.succeeded.Add(1)
	} else {
		h.failed.Add(1)
	}

	h.writeReport(ctx, jobharvest.ReportRow{
		JobID:   job.ID,
		Title:   job.Title,
		Status:  outcome,
		Elapsed: time.Since(itemStart),
		Error:   job.LastError,
	})
}

// attemptOnce performs one load→extract→validate pass over a job.
// Every attempt, whatever its outcome, persists content, last error and the
// attempt timestamp, so later runs can distinguish never-tried from
// tried-and-failed from succeeded.
func (h *Harvester) attemptOnce(ctx context.Context, job *jobharvest.Job, attempt int) (jobharvest.ReportStatus, error) {
	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx, domainOf(job.URL)); err != nil {
			return "", err
		}
	}

	h.logger().Info("attempt", "job", job.ID, "url", job.URL, "n", attempt)

	page, err := h.Loader.Load(ctx, job.URL)
	if err != nil {
		h.recordAttempt(ctx, job, jobharvest.JobAttempted, job.Content, jobharvest.StrategyNone, err.Error())
		return "", err
	}
	defer page.Close()

	result, err := h.Extractor.Extract(ctx, page)
	if err != nil {
		h.recordAttempt(ctx, job, jobharvest.JobAttempted, job.Content, jobharvest.StrategyNone, err.Error())
		return "", err
	}

	if !result.OK {
		// Partial text is retained for review even though no strategy
		// cleared the threshold.
		shortErr := jobharvest.Errorf(jobharvest.EUNAVAILABLE,
			"no strategy cleared the content threshold (best %d chars)", result.Chars)
		h.recordAttempt(ctx, job, jobharvest.JobAttempted, result.Text, jobharvest.StrategyNone, shortErr.Message)
		return "", shortErr
	}

	verdict := h.Validator.Validate(result.Text)
	if verdict.Pass {
		h.recordAttempt(ctx, job, jobharvest.JobSucceeded, result.Text, result.Strategy, "")
		return jobharvest.ReportSuccess, nil
	}

	if h.Config.SnapshotDir != "" {
		path := filepath.Join(h.Config.SnapshotDir, job.ID+".png")
		if err := page.Snapshot(ctx, path); err != nil {
			h.logger().Warn("diagnostic snapshot failed", "job", job.ID, "err", err)
		}
	}

	// Content was captured; keep it for human review alongside the
	// specific failed checks.
	reason := "validation failed: " + strings.Join(verdict.Failed, ", ")
	h.recordAttempt(ctx, job, jobharvest.JobValidationFailed, result.Text, result.Strategy, reason)
	h.logger().Warn("content rejected",
		"job", job.ID,
		"failed_checks", verdict.Failed,
		"chars", verdict.Chars,
	)
	return jobharvest.ReportValidationFailed, nil
}

// recordAttempt persists one attempt's bookkeeping. The write is shielded
// from cancellation so an interrupt never leaves a half-written record.
func (h *Harvester) recordAttempt(ctx context.Context, job *jobharvest.Job, state jobharvest.JobState, content string, strategy jobharvest.Strategy, lastErr string) {
	now := time.Now().UTC()
	job.State = state
	job.Content = content
	job.Strategy = strategy
	job.LastError = lastErr
	job.LastAttemptAt = now
	job.AttemptCount++

	upd := jobharvest.JobUpdate{
		State:         &state,
		Content:       &content,
		Strategy:      &strategy,
		LastError:     &lastErr,
		LastAttemptAt: &now,
		AttemptCount:  &job.AttemptCount,
	}
	if _, err := h.Jobs.UpdateJob(context.WithoutCancel(ctx), job.ID, upd); err != nil {
		h.logger().Error("persisting attempt failed", "job", job.ID, "err", err)
	}
}

// recordTerminal moves a job into a terminal state without touching the
// attempt bookkeeping written by the last attempt.
func (h *Harvester) recordTerminal(ctx context.Context, job *jobharvest.Job, state jobharvest.JobState) {
	job.State = state
	if _, err := h.Jobs.UpdateJob(context.WithoutCancel(ctx), job.ID, jobharvest.JobUpdate{State: &state}); err != nil {
		h.logger().Error("persisting terminal state failed", "job", job.ID, "err", err)
	}
}

func (h *Harvester) writeReport(ctx context.Context, row jobharvest.ReportRow) {
	if h.Reports == nil {
		return
	}
	if err := h.Reports.WriteRow(context.WithoutCancel(ctx), row); err != nil {
		h.logger().Error("writing report row failed", "job", row.JobID, "err", err)
	}
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// domainOf extracts the host for rate limiting; falls back to the raw URL
// when parsing fails so malformed URLs still share one bucket.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// Package slog provides logging decorators for jobharvest services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tszym/jobharvest"
)

// Ensure LoggingQuerier implements jobharvest.Querier at compile time.
var _ jobharvest.Querier = (*LoggingQuerier)(nil)

// LoggingQuerier wraps a Querier with per-call logging. Semantic queries
// are the expensive and rate-limited part of a run, so each one is worth
// a log line with its timing.
type LoggingQuerier struct {
	next   jobharvest.Querier
	logger *slog.Logger
}

// NewLoggingQuerier creates a new LoggingQuerier.
func NewLoggingQuerier(next jobharvest.Querier, logger *slog.Logger) *LoggingQuerier {
	return &LoggingQuerier{next: next, logger: logger}
}

// QueryFields delegates to the wrapped Querier and logs the outcome.
func (q *LoggingQuerier) QueryFields(ctx context.Context, html string, fields []string) (map[string]string, error) {
	begin := time.Now()
	result, err := q.next.QueryFields(ctx, html, fields)
	if err != nil {
		q.logger.Error("field query",
			"fields", fields,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	q.logger.Info("field query",
		"fields", fields,
		"found", len(result),
		"duration", time.Since(begin),
	)
	return result, nil
}

// Package fs provides file-based report output for extraction runs.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/tszym/jobharvest"
)

// Ensure ReportWriter implements jobharvest.ReportWriter at compile time.
var _ jobharvest.ReportWriter = (*ReportWriter)(nil)

// reportHeader is the first row of every report file.
var reportHeader = []string{"job_id", "title", "status", "elapsed_seconds", "error"}

// ReportWriter appends run results to a CSV file, one row per processed
// job. Rows are flushed as they arrive so a halted run still leaves a
// usable report behind.
type ReportWriter struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// NewReportWriter creates the report file at path, creating parent
// directories as needed. An existing file at path is truncated.
func NewReportWriter(path string) (*ReportWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(file)
	if err := w.Write(reportHeader); err != nil {
		file.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return nil, err
	}

	return &ReportWriter{file: file, w: w}, nil
}

// WriteRow appends one result row and flushes it to disk.
// Workers report concurrently, so writes are serialized.
func (r *ReportWriter) WriteRow(ctx context.Context, row jobharvest.ReportRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record := []string{
		row.JobID,
		row.Title,
		string(row.Status),
		strconv.FormatFloat(row.Elapsed.Seconds(), 'f', 2, 64),
		row.Error,
	}
	if err := r.w.Write(record); err != nil {
		return fmt.Errorf("failed to write report row: %w", err)
	}

	r.w.Flush()
	return r.w.Error()
}

// Close flushes pending rows and closes the report file.
func (r *ReportWriter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

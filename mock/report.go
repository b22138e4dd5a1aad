package mock

import (
	"context"

	"github.com/tszym/jobharvest"
)

var _ jobharvest.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of jobharvest.ReportWriter.
type ReportWriter struct {
	WriteRowFn func(ctx context.Context, row jobharvest.ReportRow) error
	CloseFn    func() error
}

func (w *ReportWriter) WriteRow(ctx context.Context, row jobharvest.ReportRow) error {
	if w.WriteRowFn == nil {
		return nil
	}
	return w.WriteRowFn(ctx, row)
}

func (w *ReportWriter) Close() error {
	if w.CloseFn == nil {
		return nil
	}
	return w.CloseFn()
}

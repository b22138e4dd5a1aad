package mock

import (
	"context"

	"github.com/tszym/jobharvest"
)

var _ jobharvest.Loader = (*Loader)(nil)

// Loader is a mock implementation of jobharvest.Loader.
type Loader struct {
	LoadFn  func(ctx context.Context, url string) (jobharvest.Page, error)
	CloseFn func() error
}

func (l *Loader) Load(ctx context.Context, url string) (jobharvest.Page, error) {
	return l.LoadFn(ctx, url)
}

func (l *Loader) Close() error {
	if l.CloseFn == nil {
		return nil
	}
	return l.CloseFn()
}

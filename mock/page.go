package mock

import (
	"context"

	"github.com/tszym/jobharvest"
)

var _ jobharvest.Page = (*Page)(nil)

// Page is a mock implementation of jobharvest.Page.
type Page struct {
	URLFn      func() string
	HTMLFn     func(ctx context.Context) (string, error)
	SnapshotFn func(ctx context.Context, path string) error
	CloseFn    func() error
}

func (p *Page) URL() string {
	if p.URLFn == nil {
		return ""
	}
	return p.URLFn()
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	if p.HTMLFn == nil {
		return "", nil
	}
	return p.HTMLFn(ctx)
}

func (p *Page) Snapshot(ctx context.Context, path string) error {
	if p.SnapshotFn == nil {
		return nil
	}
	return p.SnapshotFn(ctx, path)
}

func (p *Page) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

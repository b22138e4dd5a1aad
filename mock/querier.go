package mock

import (
	"context"

	"github.com/tszym/jobharvest"
)

var _ jobharvest.Querier = (*Querier)(nil)

// Querier is a mock implementation of jobharvest.Querier.
type Querier struct {
	QueryFieldsFn func(ctx context.Context, html string, fields []string) (map[string]string, error)
}

func (q *Querier) QueryFields(ctx context.Context, html string, fields []string) (map[string]string, error) {
	return q.QueryFieldsFn(ctx, html, fields)
}

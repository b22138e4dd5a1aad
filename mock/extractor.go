package mock

import (
	"context"

	"github.com/tszym/jobharvest"
)

var _ jobharvest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jobharvest.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, page jobharvest.Page) (*jobharvest.ExtractionResult, error)
}

func (e *Extractor) Extract(ctx context.Context, page jobharvest.Page) (*jobharvest.ExtractionResult, error) {
	return e.ExtractFn(ctx, page)
}

var _ jobharvest.Validator = (*Validator)(nil)

// Validator is a mock implementation of jobharvest.Validator.
type Validator struct {
	ValidateFn func(text string) jobharvest.ValidationVerdict
}

func (v *Validator) Validate(text string) jobharvest.ValidationVerdict {
	return v.ValidateFn(text)
}

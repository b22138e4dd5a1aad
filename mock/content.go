package mock

import "github.com/tszym/jobharvest"

var _ jobharvest.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of jobharvest.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*jobharvest.ContentResult, error)
}

func (e *ContentExtractor) Extract(html string) (*jobharvest.ContentResult, error) {
	return e.ExtractFn(html)
}

var _ jobharvest.ContainerSelector = (*ContainerSelector)(nil)

// ContainerSelector is a mock implementation of jobharvest.ContainerSelector.
type ContainerSelector struct {
	ContainersFn func(html string) ([]string, error)
}

func (s *ContainerSelector) Containers(html string) ([]string, error) {
	return s.ContainersFn(html)
}

var _ jobharvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of jobharvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Package trafilatura implements page-level content-region extraction.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/tszym/jobharvest"
	"golang.org/x/net/html"
)

// Ensure Extractor implements jobharvest.ContentExtractor at compile time.
var _ jobharvest.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content region from
// HTML, removing navigation, footer and sidebar boilerplate. It backs the
// broad content-region extraction strategy: page-level content areas
// rather than job-specific fields.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*jobharvest.ContentResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &jobharvest.ContentResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

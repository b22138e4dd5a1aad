// Package goquery implements structural content selection using CSS queries.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tszym/jobharvest"
)

// containerSelectors are tried in order of specificity: job-board content
// wrappers first, then generic page-level content areas.
var containerSelectors = []string{
	".job-description",
	".jobDescription",
	"#job-description",
	"[data-testid='jobDescriptionText']",
	".description__text",
	"main",
	"article",
	"[role='main']",
	"#content",
	".content",
	".posting",
}

// minContainerHTML filters out trivially small matches (icons, empty
// wrappers) before conversion.
const minContainerHTML = 80

// Ensure ContainerSelector implements jobharvest.ContainerSelector.
var _ jobharvest.ContainerSelector = (*ContainerSelector)(nil)

// ContainerSelector selects generic content containers directly from HTML.
// It is the raw structural fallback: no semantics, just the places where
// job boards usually keep their text.
type ContainerSelector struct {
	selectors []string
}

// NewContainerSelector creates a ContainerSelector with the default
// selector list.
func NewContainerSelector() *ContainerSelector {
	return &ContainerSelector{selectors: containerSelectors}
}

// NewContainerSelectorWith creates a ContainerSelector with a custom
// selector list, for boards with unusual markup.
func NewContainerSelectorWith(selectors []string) *ContainerSelector {
	return &ContainerSelector{selectors: selectors}
}

// Containers returns the HTML of candidate content containers. The first
// selector that matches anything wins, so a specific job-description
// wrapper shadows the page-level fallbacks that would contain it.
func (s *ContainerSelector) Containers(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	for _, selector := range s.selectors {
		var matches []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			inner, err := sel.Html()
			if err != nil {
				return
			}
			if len(strings.TrimSpace(inner)) >= minContainerHTML {
				matches = append(matches, inner)
			}
		})
		if len(matches) > 0 {
			return matches, nil
		}
	}

	return nil, nil
}

package harvest

import (
	"context"
	"strings"

	"github.com/tszym/jobharvest"
)

// Semantic query fields for the structured and single-field strategies.
var (
	structuredFields = []string{"description", "responsibilities", "qualifications", "overview"}
	singleField      = []string{"job_description"}
)

// Ensure Extractor implements jobharvest.Extractor at compile time.
var _ jobharvest.Extractor = (*Extractor)(nil)

// Extractor runs ordered fallback strategies against a prepared page until
// one yields acceptable content volume:
//
//  1. structured — semantic query for several distinct posting fields
//  2. single — semantic query for one generic description field
//  3. content — page-level content-region extraction
//  4. containers — raw structural fallback over generic content containers
//
// A later strategy runs only while every earlier one stayed below MinChars.
// Semantic-query errors abort extraction, since they may signal a fatal
// upstream condition; structural strategy errors merely skip that strategy.
type Extractor struct {
	Querier    jobharvest.Querier
	Content    jobharvest.ContentExtractor
	Containers jobharvest.ContainerSelector
	Converter  jobharvest.Converter

	// MinChars is the acceptance threshold (T_min), title header excluded.
	MinChars int

	// MinComponentChars drops near-empty components from the structured
	// strategy before concatenation.
	MinComponentChars int

	Logger LogFunc
}

// Extract obtains candidate text for the page. On failure the result
// carries the longest partial text any strategy produced, for audit.
func (e *Extractor) Extract(ctx context.Context, page jobharvest.Page) (*jobharvest.ExtractionResult, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}

	best := &jobharvest.ExtractionResult{Strategy: jobharvest.StrategyNone}

	type strategy struct {
		name jobharvest.Strategy
		run  func(ctx context.Context, html string) (string, error)
	}
	strategies := []strategy{
		{jobharvest.StrategyStructured, e.structured},
		{jobharvest.StrategySingle, e.single},
		{jobharvest.StrategyContent, e.contentRegion},
		{jobharvest.StrategyContainers, e.rawContainers},
	}

	for _, s := range strategies {
		text, err := s.run(ctx, html)
		if err != nil {
			if isSemantic(s.name) {
				return nil, err
			}
			e.logf("  strategy %s skipped: %v", s.name, err)
			continue
		}

		chars := len(jobharvest.StripTitleHeader(text))
		if chars >= e.MinChars {
			return &jobharvest.ExtractionResult{
				Strategy: s.name,
				Text:     text,
				Chars:    chars,
				OK:       true,
			}, nil
		}
		if chars > best.Chars {
			best.Text = text
			best.Chars = chars
		}
	}

	return best, nil
}

// isSemantic reports whether the strategy consults the semantic querier.
func isSemantic(s jobharvest.Strategy) bool {
	return s == jobharvest.StrategyStructured || s == jobharvest.StrategySingle
}

// structured queries several semantically distinct posting fields,
// deduplicates them, and concatenates the substantial components.
func (e *Extractor) structured(ctx context.Context, html string) (string, error) {
	fields, err := e.Querier.QueryFields(ctx, html, structuredFields)
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	var parts []string
	for _, name := range structuredFields {
		component := strings.TrimSpace(fields[name])
		if len(component) < e.MinComponentChars || seen[component] {
			continue
		}
		seen[component] = true
		parts = append(parts, component)
	}

	return strings.Join(parts, "\n\n"), nil
}

// single queries one generic description field.
func (e *Extractor) single(ctx context.Context, html string) (string, error) {
	fields, err := e.Querier.QueryFields(ctx, html, singleField)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(fields[singleField[0]]), nil
}

// contentRegion extracts the page-level main content area.
func (e *Extractor) contentRegion(_ context.Context, html string) (string, error) {
	result, err := e.Content.Extract(html)
	if err != nil {
		return "", err
	}

	text, err := e.Converter.Convert(result.ContentHTML)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if result.Title != "" && text != "" {
		return "# " + result.Title + "\n\n" + text, nil
	}
	return text, nil
}

// rawContainers selects generic content containers directly.
func (e *Extractor) rawContainers(_ context.Context, html string) (string, error) {
	containers, err := e.Containers.Containers(html)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, c := range containers {
		text, err := e.Converter.Convert(c)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

func (e *Extractor) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger(format, args...)
	}
}

package jobharvest

import "context"

// Strategy identifies one technique for eliciting job-posting content
// from a page.
type Strategy string

// Extraction strategies, in fallback order.
const (
	StrategyNone       Strategy = ""
	StrategyStructured Strategy = "structured"
	StrategySingle     Strategy = "single"
	StrategyContent    Strategy = "content"
	StrategyContainers Strategy = "containers"
)

// ExtractionResult holds the outcome of running the extraction strategies
// against one page.
type ExtractionResult struct {
	// Strategy is the strategy that produced Text, or StrategyNone if no
	// strategy cleared the minimum character threshold.
	Strategy Strategy

	// Text is the extracted content. On failure it carries the longest
	// partial text produced by any strategy (possibly empty) for audit.
	Text string

	// Chars is the length of Text excluding a recognized title header.
	Chars int

	// OK reports whether any strategy cleared the minimum threshold.
	OK bool
}

// Extractor runs ordered fallback extraction strategies against a prepared
// page until one yields acceptable content volume.
type Extractor interface {
	Extract(ctx context.Context, page Page) (*ExtractionResult, error)
}

// Querier answers semantic field queries against page HTML. Given the names
// of desired fields it returns a mapping of field name to extracted text;
// fields the page does not contain are absent from the result.
type Querier interface {
	QueryFields(ctx context.Context, html string, fields []string) (map[string]string, error)
}

// ContentResult holds the main content region extracted from an HTML page.
type ContentResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// ContentExtractor extracts the main content region from HTML pages,
// removing boilerplate.
type ContentExtractor interface {
	Extract(html string) (*ContentResult, error)
}

// ContainerSelector selects generic content containers directly from HTML.
// It is the raw structural fallback used when semantic and content-region
// strategies come up short.
type ContainerSelector interface {
	// Containers returns the HTML of candidate content containers,
	// document order, outermost match first.
	Containers(html string) ([]string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from a ContentExtractor).
	Convert(html string) (string, error)
}

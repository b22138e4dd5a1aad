package jobharvest

import "context"

// Page represents a single prepared browser page, ready for extraction.
// A Page is an exclusively-owned, heavyweight resource for the duration of
// one extraction attempt and must be closed when the attempt finishes.
type Page interface {
	// URL returns the page's final URL after any redirects.
	URL() string

	// HTML returns the rendered HTML of the page as it currently stands.
	HTML(ctx context.Context) (string, error)

	// Snapshot writes a diagnostic screenshot to the given path.
	Snapshot(ctx context.Context, path string) error

	// Close releases the page.
	Close() error
}

// Limiter provides per-domain rate limiting for page loads.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Loader prepares pages for extraction. Implementations handle navigation
// timeouts, lazy-load scrolling and overlay dismissal; only failure to reach
// minimal document readiness is fatal.
type Loader interface {
	// Load navigates to the URL and prepares the page for extraction.
	// The context controls timeout and cancellation.
	Load(ctx context.Context, url string) (Page, error)

	// Close releases browser resources.
	// Must be called when the Loader is no longer needed.
	Close() error
}

// Package rod implements page loading using Chrome browser automation.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/tszym/jobharvest"
)

// Default page-preparation parameters.
const (
	DefaultNavTimeout    = 30 * time.Second
	DefaultSettleTimeout = 10 * time.Second
	DefaultScrollCycles  = 4
	DefaultScrollPause   = 500 * time.Millisecond
)

// dismissOverlaysJS clicks the usual suspects: cookie banners, modal close
// buttons, consent prompts. Selectors are best-effort; a miss is harmless.
const dismissOverlaysJS = `() => {
	const selectors = [
		'[aria-label="Close"]',
		'[aria-label="Dismiss"]',
		'[aria-label="close"]',
		'.modal-close',
		'.close-button',
		'button.cookie-accept',
		'#onetrust-accept-btn-handler',
	];
	for (const sel of selectors) {
		const el = document.querySelector(sel);
		if (el) el.click();
	}
}`

// Ensure Loader implements jobharvest.Loader at compile time.
var _ jobharvest.Loader = (*Loader)(nil)

// Loader prepares pages for extraction using a managed Chrome browser.
// Loader is safe for concurrent use by multiple goroutines; each Load call
// owns its page exclusively until Close.
type Loader struct {
	manager       *BrowserManager
	navTimeout    time.Duration
	settleTimeout time.Duration
	scrollCycles  int
	scrollPause   time.Duration
	logger        *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithNavTimeout sets the hard timeout for reaching minimal document
// readiness. Expiry fails the load.
func WithNavTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.navTimeout = d }
}

// WithSettleTimeout sets the advisory timeout for the fully-loaded wait.
// Expiry is logged and ignored: many pages never quiesce due to background
// network chatter, and failing them systematically would be a false signal.
func WithSettleTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.settleTimeout = d }
}

// WithScrollCycles sets how many scroll-increment/pause cycles run to
// trigger lazily-loaded sections.
func WithScrollCycles(n int, pause time.Duration) LoaderOption {
	return func(l *Loader) {
		l.scrollCycles = n
		l.scrollPause = pause
	}
}

// WithLogger sets the logger for advisory-stage warnings.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader on top of a BrowserManager.
func NewLoader(manager *BrowserManager, opts ...LoaderOption) *Loader {
	l := &Loader{
		manager:       manager,
		navTimeout:    DefaultNavTimeout,
		settleTimeout: DefaultSettleTimeout,
		scrollCycles:  DefaultScrollCycles,
		scrollPause:   DefaultScrollPause,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load navigates to the URL and prepares the page for extraction: hard wait
// for minimal readiness, advisory wait for full load, lazy-load scrolling,
// and best-effort overlay dismissal. Only the first readiness wait can fail
// the operation.
func (l *Loader) Load(ctx context.Context, url string) (jobharvest.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := l.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	page = page.Context(ctx)

	// Stage 1: navigation to minimal readiness. This is the only fatal wait.
	hard := page.Timeout(l.navTimeout)
	if err := hard.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := hard.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("waiting for readiness of %s: %w", url, err)
	}

	// Stage 2: advisory wait for the page to go quiet.
	if err := page.Timeout(l.settleTimeout).WaitIdle(l.settleTimeout); err != nil {
		l.logger.Warn("page did not fully settle, continuing", "url", url, "err", err)
	}

	l.scrollThrough(ctx, page, url)
	l.dismissOverlays(page, url)

	l.manager.IncrementPageCount()

	return &Page{page: page, url: url}, nil
}

// scrollThrough runs the fixed scroll-increment/pause cycles that trigger
// lazily-loaded sections, then resets the scroll position.
func (l *Loader) scrollThrough(ctx context.Context, page *rod.Page, url string) {
	for i := 0; i < l.scrollCycles; i++ {
		if _, err := page.Eval(`() => window.scrollBy(0, window.innerHeight)`); err != nil {
			l.logger.Warn("scroll failed", "url", url, "err", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.scrollPause):
		}
	}
	if _, err := page.Eval(`() => window.scrollTo(0, 0)`); err != nil {
		l.logger.Warn("scroll reset failed", "url", url, "err", err)
	}
}

// dismissOverlays attempts to close modal/overlay elements. Failure is
// non-fatal: the extraction strategies still see the underlying content.
func (l *Loader) dismissOverlays(page *rod.Page, url string) {
	if _, err := page.Eval(dismissOverlaysJS); err != nil {
		l.logger.Warn("overlay dismissal failed", "url", url, "err", err)
	}
}

// Close releases browser resources.
func (l *Loader) Close() error {
	return l.manager.Close()
}

// Ensure Page implements jobharvest.Page at compile time.
var _ jobharvest.Page = (*Page)(nil)

// Page is a prepared browser page.
type Page struct {
	page *rod.Page
	url  string
}

// URL returns the page's requested URL.
func (p *Page) URL() string {
	return p.url
}

// HTML returns the rendered HTML of the page.
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Snapshot writes a diagnostic screenshot to the given path.
func (p *Page) Snapshot(ctx context.Context, path string) error {
	data, err := p.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("capturing screenshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Close releases the page.
func (p *Page) Close() error {
	return p.page.Close()
}

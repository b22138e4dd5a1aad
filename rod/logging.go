package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/tszym/jobharvest"
)

// Ensure LoggingLoader implements jobharvest.Loader.
var _ jobharvest.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with debug logging.
type LoggingLoader struct {
	next   jobharvest.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next jobharvest.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load logs the URL being prepared and delegates to the wrapped loader.
func (l *LoggingLoader) Load(ctx context.Context, url string) (page jobharvest.Page, err error) {
	defer func(begin time.Time) {
		l.logger.Info("page load",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}

// Close delegates to the wrapped loader.
func (l *LoggingLoader) Close() error {
	return l.next.Close()
}

package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/mock"
	"github.com/tszym/jobharvest/rod"
)

func TestLoggingLoader(t *testing.T) {
	t.Parallel()

	t.Run("logs the URL and delegates", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Loader{
			LoadFn: func(_ context.Context, url string) (jobharvest.Page, error) {
				return &mock.Page{URLFn: func() string { return url }}, nil
			},
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		loader := rod.NewLoggingLoader(inner, logger)

		page, err := loader.Load(context.Background(), "https://example.com/jobs/1")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/jobs/1", page.URL())
		assert.Contains(t, buf.String(), "page load")
		assert.Contains(t, buf.String(), "https://example.com/jobs/1")
	})

	t.Run("logs errors from the wrapped loader", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("navigation timeout")
		inner := &mock.Loader{
			LoadFn: func(_ context.Context, _ string) (jobharvest.Page, error) {
				return nil, loadErr
			},
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		loader := rod.NewLoggingLoader(inner, logger)

		_, err := loader.Load(context.Background(), "https://example.com/jobs/1")

		assert.Equal(t, loadErr, err)
		assert.Contains(t, buf.String(), "navigation timeout")
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Loader{
			LoadFn:  func(_ context.Context, _ string) (jobharvest.Page, error) { return nil, nil },
			CloseFn: func() error { closed = true; return nil },
		}

		loader := rod.NewLoggingLoader(inner, slog.New(slog.DiscardHandler))

		require.NoError(t, loader.Close())
		assert.True(t, closed)
	})
}

package harvest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/harvest"
	"github.com/tszym/jobharvest/mock"
)

// identityConverter passes HTML through unchanged, so tests can reason
// about lengths directly.
func identityConverter() *mock.Converter {
	return &mock.Converter{ConvertFn: func(html string) (string, error) {
		return html, nil
	}}
}

func testPage(html string) *mock.Page {
	return &mock.Page{
		URLFn:  func() string { return "https://example.com/jobs/1" },
		HTMLFn: func(_ context.Context) (string, error) { return html, nil },
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("structured strategy wins when it clears the threshold", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("responsibilities include many things. ", 10)

		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, fields []string) (map[string]string, error) {
				require.Equal(t, []string{"description", "responsibilities", "qualifications", "overview"}, fields)
				return map[string]string{"description": long}, nil
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           &mock.ContentExtractor{ExtractFn: func(string) (*jobharvest.ContentResult, error) { panic("content strategy must not run") }},
			Containers:        &mock.ContainerSelector{ContainersFn: func(string) ([]string, error) { panic("container strategy must not run") }},
			Converter:         identityConverter(),
			MinChars:          200,
			MinComponentChars: 40,
		}

		result, err := e.Extract(context.Background(), testPage("<html/>"))

		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, jobharvest.StrategyStructured, result.Strategy)
		assert.GreaterOrEqual(t, result.Chars, 200)
	})

	t.Run("later strategies never run once an earlier one succeeds", func(t *testing.T) {
		t.Parallel()

		queries := 0
		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, fields []string) (map[string]string, error) {
				queries++
				if len(fields) == 1 {
					return map[string]string{"job_description": strings.Repeat("x", 250)}, nil
				}
				// Structured query comes up empty.
				return map[string]string{}, nil
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           &mock.ContentExtractor{ExtractFn: func(string) (*jobharvest.ContentResult, error) { panic("content strategy must not run") }},
			Containers:        &mock.ContainerSelector{ContainersFn: func(string) ([]string, error) { panic("container strategy must not run") }},
			Converter:         identityConverter(),
			MinChars:          200,
			MinComponentChars: 40,
		}

		result, err := e.Extract(context.Background(), testPage("<html/>"))

		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, jobharvest.StrategySingle, result.Strategy)
		assert.Equal(t, 2, queries)
	})

	t.Run("structured strategy deduplicates and drops short components", func(t *testing.T) {
		t.Parallel()

		component := strings.Repeat("meaningful responsibilities text. ", 5)

		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, fields []string) (map[string]string, error) {
				if len(fields) == 1 {
					return map[string]string{}, nil
				}
				return map[string]string{
					"description":      component,
					"responsibilities": component, // duplicate, dropped
					"qualifications":   "tiny",    // under component minimum, dropped
				}, nil
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           &mock.ContentExtractor{ExtractFn: func(string) (*jobharvest.ContentResult, error) { return &jobharvest.ContentResult{}, nil }},
			Containers:        &mock.ContainerSelector{ContainersFn: func(string) ([]string, error) { return nil, nil }},
			Converter:         identityConverter(),
			MinChars:          10_000, // force all strategies to fall short
			MinComponentChars: 40,
		}

		result, err := e.Extract(context.Background(), testPage("<html/>"))

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, strings.TrimSpace(component), result.Text)
	})

	t.Run("falls through to content-region and container strategies", func(t *testing.T) {
		t.Parallel()

		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, _ []string) (map[string]string, error) {
				return map[string]string{}, nil
			},
		}
		content := &mock.ContentExtractor{
			ExtractFn: func(string) (*jobharvest.ContentResult, error) {
				return nil, errors.New("no content node")
			},
		}
		containers := &mock.ContainerSelector{
			ContainersFn: func(string) ([]string, error) {
				return []string{strings.Repeat("c", 150), strings.Repeat("d", 150)}, nil
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           content,
			Containers:        containers,
			Converter:         identityConverter(),
			MinChars:          200,
			MinComponentChars: 40,
		}

		result, err := e.Extract(context.Background(), testPage("<html/>"))

		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, jobharvest.StrategyContainers, result.Strategy)
	})

	t.Run("content-region strategy prefixes the metadata title as a header", func(t *testing.T) {
		t.Parallel()

		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, _ []string) (map[string]string, error) {
				return map[string]string{}, nil
			},
		}
		content := &mock.ContentExtractor{
			ExtractFn: func(string) (*jobharvest.ContentResult, error) {
				return &jobharvest.ContentResult{
					Title:       "Senior Gopher",
					ContentHTML: strings.Repeat("b", 250),
				}, nil
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           content,
			Containers:        &mock.ContainerSelector{ContainersFn: func(string) ([]string, error) { return nil, nil }},
			Converter:         identityConverter(),
			MinChars:          200,
			MinComponentChars: 40,
		}

		result, err := e.Extract(context.Background(), testPage("<html/>"))

		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, jobharvest.StrategyContent, result.Strategy)
		assert.True(t, strings.HasPrefix(result.Text, "# Senior Gopher\n\n"))
		assert.Equal(t, 250, result.Chars, "title header must not count toward the threshold")
	})

	t.Run("returns failure with the longest partial when nothing clears the threshold", func(t *testing.T) {
		t.Parallel()

		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, fields []string) (map[string]string, error) {
				if len(fields) == 1 {
					return map[string]string{"job_description": strings.Repeat("y", 120)}, nil
				}
				return map[string]string{"description": strings.Repeat("z", 60)}, nil
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           &mock.ContentExtractor{ExtractFn: func(string) (*jobharvest.ContentResult, error) { return nil, errors.New("nope") }},
			Containers:        &mock.ContainerSelector{ContainersFn: func(string) ([]string, error) { return nil, nil }},
			Converter:         identityConverter(),
			MinChars:          200,
			MinComponentChars: 40,
		}

		result, err := e.Extract(context.Background(), testPage("<html/>"))

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, jobharvest.StrategyNone, result.Strategy)
		assert.Equal(t, strings.Repeat("y", 120), result.Text)
		assert.Equal(t, 120, result.Chars)
	})

	t.Run("semantic query errors abort extraction", func(t *testing.T) {
		t.Parallel()

		quotaErr := errors.New("429 RESOURCE_EXHAUSTED: quota exceeded")

		querier := &mock.Querier{
			QueryFieldsFn: func(_ context.Context, _ string, _ []string) (map[string]string, error) {
				return nil, quotaErr
			},
		}

		e := &harvest.Extractor{
			Querier:           querier,
			Content:           &mock.ContentExtractor{ExtractFn: func(string) (*jobharvest.ContentResult, error) { panic("must not run") }},
			Containers:        &mock.ContainerSelector{ContainersFn: func(string) ([]string, error) { panic("must not run") }},
			Converter:         identityConverter(),
			MinChars:          200,
			MinComponentChars: 40,
		}

		_, err := e.Extract(context.Background(), testPage("<html/>"))

		assert.Equal(t, quotaErr, err)
	})
}

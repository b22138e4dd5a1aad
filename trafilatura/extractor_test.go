package trafilatura_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/trafilatura"
)

// Ensure Extractor implements jobharvest.ContentExtractor at compile time.
var _ jobharvest.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Senior Gopher - Example Corp</title>
<meta property="og:title" content="Senior Gopher">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Senior Gopher</h1>
<p>We are looking for an engineer to own our extraction pipeline.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts the posting body and drops boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Senior Gopher</title></head>
<body>
<nav class="main-nav"><a href="/">Home</a><a href="/jobs">Jobs</a></nav>
<article>
<h1>Senior Gopher</h1>
<p>Responsibilities include owning the extraction pipeline end to end.</p>
<p>Requirements: several years of experience shipping Go services.</p>
</article>
<aside>Related postings</aside>
<footer><p>Copyright 2026 Example Corp</p></footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "owning the extraction pipeline")
		assert.Contains(t, result.ContentHTML, "years of experience")
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2026 Example Corp")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		assert.Error(t, err)
	})
}

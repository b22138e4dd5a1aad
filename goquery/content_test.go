package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest/goquery"
)

func TestContainerSelector_Containers(t *testing.T) {
	t.Parallel()

	t.Run("specific job-description wrapper shadows page-level fallbacks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<main>` + strings.Repeat("<p>page chrome around the posting</p>", 5) + `
				<div class="job-description">` + strings.Repeat("<p>the actual posting body text</p>", 5) + `</div>
			</main>
		</body></html>`

		s := goquery.NewContainerSelector()

		containers, err := s.Containers(html)

		require.NoError(t, err)
		require.Len(t, containers, 1)
		assert.Contains(t, containers[0], "the actual posting body text")
		assert.NotContains(t, containers[0], "page chrome")
	})

	t.Run("falls back to main when no job wrapper exists", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<nav>site navigation</nav>
			<main>` + strings.Repeat("<p>a paragraph of posting content</p>", 5) + `</main>
			<footer>site footer</footer>
		</body></html>`

		s := goquery.NewContainerSelector()

		containers, err := s.Containers(html)

		require.NoError(t, err)
		require.Len(t, containers, 1)
		assert.Contains(t, containers[0], "posting content")
		assert.NotContains(t, containers[0], "site footer")
	})

	t.Run("skips trivially small matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="job-description">tiny</div>
			<main>` + strings.Repeat("<p>substantial body content here</p>", 5) + `</main>
		</body></html>`

		s := goquery.NewContainerSelector()

		containers, err := s.Containers(html)

		require.NoError(t, err)
		require.Len(t, containers, 1)
		assert.Contains(t, containers[0], "substantial body content")
	})

	t.Run("returns nothing for a page with no content areas", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewContainerSelector()

		containers, err := s.Containers(`<html><body><span>x</span></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, containers)
	})

	t.Run("custom selector list", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><section class="vacancy">` +
			strings.Repeat("<p>vacancy description paragraph</p>", 5) +
			`</section></body></html>`

		s := goquery.NewContainerSelectorWith([]string{".vacancy"})

		containers, err := s.Containers(html)

		require.NoError(t, err)
		require.Len(t, containers, 1)
		assert.Contains(t, containers[0], "vacancy description")
	})
}

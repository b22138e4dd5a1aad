package gemini_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/gemini"
	"google.golang.org/genai"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("contains field names and page HTML", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt("<main>posting</main>", []string{"description", "qualifications"})

		assert.Contains(t, prompt, "- description")
		assert.Contains(t, prompt, "- qualifications")
		assert.Contains(t, prompt, "<main>posting</main>")
	})

	t.Run("truncates oversized HTML", func(t *testing.T) {
		t.Parallel()

		huge := strings.Repeat("x", 300_000)

		prompt := gemini.BuildUserPrompt(huge, []string{"description"})

		assert.Less(t, len(prompt), 210_000)
	})

	t.Run("truncation never splits a multi-byte rune", func(t *testing.T) {
		t.Parallel()

		// Pad so the cut point lands mid-rune for every offset in a
		// two-byte sequence.
		for pad := 0; pad < 2; pad++ {
			huge := strings.Repeat("a", 199_999+pad) + strings.Repeat("é", 200)

			prompt := gemini.BuildUserPrompt(huge, []string{"description"})

			assert.True(t, utf8.ValidString(prompt), "pad %d", pad)
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig([]string{"description", "overview"})

	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	assert.Equal(t, genai.TypeObject, config.ResponseSchema.Type)
	assert.Contains(t, config.ResponseSchema.Properties, "description")
	assert.Contains(t, config.ResponseSchema.Properties, "overview")
	require.NotNil(t, config.SystemInstruction)
	require.NotNil(t, config.Temperature)
}

func TestQuerier_QueryFields_Validation(t *testing.T) {
	t.Parallel()

	q := gemini.NewQuerier(nil)

	t.Run("requires HTML", func(t *testing.T) {
		t.Parallel()

		_, err := q.QueryFields(context.Background(), "  ", []string{"description"})

		assert.Equal(t, jobharvest.EINVALID, jobharvest.ErrorCode(err))
	})

	t.Run("requires at least one field", func(t *testing.T) {
		t.Parallel()

		_, err := q.QueryFields(context.Background(), "<html/>", nil)

		assert.Equal(t, jobharvest.EINVALID, jobharvest.ErrorCode(err))
	})
}

// Package gemini implements semantic page queries using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tszym/jobharvest"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxHTMLChars bounds the HTML sent to the model. Job pages past this size
// are all boilerplate; the posting itself sits well within it.
const maxHTMLChars = 200_000

// Ensure Querier implements jobharvest.Querier at compile time.
var _ jobharvest.Querier = (*Querier)(nil)

// Querier implements jobharvest.Querier using Google Gemini with a
// constrained JSON response schema.
type Querier struct {
	client *genai.Client
}

// NewQuerier creates a new Querier.
func NewQuerier(client *genai.Client) *Querier {
	return &Querier{client: client}
}

// QueryFields extracts the requested fields from page HTML. Fields the page
// does not contain are absent from the result.
func (q *Querier) QueryFields(ctx context.Context, html string, fields []string) (map[string]string, error) {
	if strings.TrimSpace(html) == "" {
		return nil, jobharvest.Errorf(jobharvest.EINVALID, "page HTML required")
	}
	if len(fields) == 0 {
		return nil, jobharvest.Errorf(jobharvest.EINVALID, "at least one field required")
	}

	prompt := BuildUserPrompt(html, fields)
	config := BuildConfig(fields)

	result, err := q.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, jobharvest.Errorf(jobharvest.EINTERNAL, "gemini returned nil result")
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(result.Text()), &raw); err != nil {
		return nil, jobharvest.Errorf(jobharvest.EINTERNAL, "gemini returned malformed JSON: %v", err)
	}

	// Validate at the boundary: keep only the requested fields, drop blanks.
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		if value := strings.TrimSpace(raw[field]); value != "" {
			out[field] = value
		}
	}
	return out, nil
}

// BuildConfig returns the GenerateContentConfig constraining the response
// to a JSON object with one string property per requested field.
func BuildConfig(fields []string) *genai.GenerateContentConfig {
	temp := float32(0.1)

	properties := make(map[string]*genai.Schema, len(fields))
	for _, field := range fields {
		properties[field] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract job-posting content from web page HTML. " +
					"Return the requested fields verbatim from the page as plain text, " +
					"preserving line breaks between items. Use an empty string for any " +
					"field the page does not contain. Never invent content.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
		},
	}
}

// BuildUserPrompt builds the user prompt containing the page HTML and the
// requested field names.
func BuildUserPrompt(html string, fields []string) string {
	if len(html) > maxHTMLChars {
		// Back the cut up to a rune boundary so the prompt stays valid UTF-8.
		cut := maxHTMLChars
		for cut > 0 && !utf8.RuneStart(html[cut]) {
			cut--
		}
		html = html[:cut]
	}

	var sb strings.Builder
	sb.WriteString("Extract the following fields from this job-posting page:\n")
	for _, field := range fields {
		fmt.Fprintf(&sb, "- %s\n", field)
	}
	sb.WriteString("\n<page>\n")
	sb.WriteString(html)
	sb.WriteString("\n</page>")
	return sb.String()
}

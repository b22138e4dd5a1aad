package jobharvest

import "strings"

// Validation check names, as recorded in ValidationVerdict.Failed.
const (
	CheckLength    = "length"
	CheckNegative  = "negative_pattern"
	CheckDensity   = "density"
	CheckCoverage  = "topical_coverage"
	CheckStructure = "structure"
)

// ValidationVerdict is the outcome of running the quality checks against
// extracted text. Failed always records which checks failed, so thresholds
// can be tuned from stored verdicts without re-running extraction.
type ValidationVerdict struct {
	Pass       bool     `json:"pass"`
	Failed     []string `json:"failed,omitempty"`
	Chars      int      `json:"chars"`
	Lines      int      `json:"lines"`
	Paragraphs int      `json:"paragraphs"`
	Categories int      `json:"categories"`
	Sections   int      `json:"sections"`
}

// Validator judges whether extracted text is complete and on-topic.
type Validator interface {
	Validate(text string) ValidationVerdict
}

// ValidatorConfig holds the thresholds and lexicons for content validation.
// The density disjunction is a tuned heuristic for one HTML-to-text
// pipeline; every constant is configurable so other extraction backends can
// retune without code changes.
type ValidatorConfig struct {
	// MinChars is the minimum text length (title header excluded).
	MinChars int

	// Density: pass with MinLines non-empty lines each longer than
	// MinLineChars, or MinParagraphs paragraphs each longer than
	// MinParagraphChars.
	MinLines          int
	MinLineChars      int
	MinParagraphs     int
	MinParagraphChars int

	// MinCategories is the number of distinct lexicon categories that must
	// match for topical coverage.
	MinCategories int

	// MinSections is the number of section-header keywords that must appear.
	MinSections int

	// NegativePatterns are boilerplate/error phrases whose presence vetoes
	// the text regardless of other scores. Matched case-insensitively.
	NegativePatterns []string

	// Lexicon maps a topical category to its keywords.
	Lexicon map[string][]string

	// SectionKeywords are the recognized section-header words.
	SectionKeywords []string
}

// DefaultValidatorConfig returns the validation thresholds and lexicons
// tuned for job-posting pages.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinChars:          200,
		MinLines:          5,
		MinLineChars:      30,
		MinParagraphs:     3,
		MinParagraphChars: 120,
		MinCategories:     2,
		MinSections:       2,
		NegativePatterns: []string{
			"equal opportunity employer and all qualified applicants will receive consideration without regard",
			"page not found",
			"error 404",
			"404 not found",
			"sign in to continue",
			"log in to view",
			"please enable javascript",
			"session expired",
			"session has expired",
			"this job is no longer available",
			"no longer accepting applications",
			"access denied",
			"verify you are a human",
		},
		Lexicon: map[string][]string{
			"responsibilities": {
				"responsible for", "responsibilities", "duties",
				"you will", "oversee", "coordinate", "manage",
			},
			"qualifications": {
				"years of experience", "degree", "proficiency",
				"required", "preferred", "knowledge of", "familiarity with",
				"qualifications",
			},
			"role": {
				"role", "position", "team", "opportunity",
				"we are looking", "join us", "about the company",
			},
			"action": {
				"develop", "design", "build", "lead", "collaborate",
				"implement", "analyze", "support", "maintain",
			},
		},
		SectionKeywords: []string{
			"responsibilities", "requirements", "qualifications",
			"benefits", "overview", "about the role", "about us",
			"what you'll do", "what you will do", "who you are",
			"skills", "experience", "compensation",
		},
	}
}

// StripTitleHeader removes a leading markdown title header from text, so a
// prominent page title does not count toward content volume. Returns the
// text unchanged if it does not start with a header line.
func StripTitleHeader(text string) string {
	trimmed := strings.TrimLeft(text, "\n ")
	if !strings.HasPrefix(trimmed, "#") {
		return text
	}
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		return strings.TrimLeft(trimmed[idx+1:], "\n")
	}
	return ""
}

// Ensure ContentValidator implements Validator at compile time.
var _ Validator = (*ContentValidator)(nil)

// ContentValidator runs five independent quality checks against extracted
// text. Validation is a pure function of the configuration and the input
// text: identical input always yields an identical verdict.
type ContentValidator struct {
	config ValidatorConfig
}

// NewContentValidator creates a ContentValidator with the given config.
func NewContentValidator(config ValidatorConfig) *ContentValidator {
	return &ContentValidator{config: config}
}

// Validate judges the text against all five checks. All must pass for
// acceptance; the verdict lists every check that failed.
func (v *ContentValidator) Validate(text string) ValidationVerdict {
	body := StripTitleHeader(text)
	lower := strings.ToLower(body)

	verdict := ValidationVerdict{Chars: len(body)}

	// Check 1: length.
	if verdict.Chars < v.config.MinChars {
		verdict.Failed = append(verdict.Failed, CheckLength)
	}

	// Check 2: negative patterns veto regardless of other scores.
	for _, pattern := range v.config.NegativePatterns {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			verdict.Failed = append(verdict.Failed, CheckNegative)
			break
		}
	}

	// Check 3: density, disjunctive over line-delimited and
	// paragraph-delimited markup.
	verdict.Lines = countSubstantial(body, "\n", v.config.MinLineChars)
	verdict.Paragraphs = countSubstantial(body, "\n\n", v.config.MinParagraphChars)
	if verdict.Lines < v.config.MinLines && verdict.Paragraphs < v.config.MinParagraphs {
		verdict.Failed = append(verdict.Failed, CheckDensity)
	}

	// Check 4: topical coverage across lexicon categories.
	for _, keywords := range v.config.Lexicon {
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				verdict.Categories++
				break
			}
		}
	}
	if verdict.Categories < v.config.MinCategories {
		verdict.Failed = append(verdict.Failed, CheckCoverage)
	}

	// Check 5: section-header keywords.
	for _, kw := range v.config.SectionKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			verdict.Sections++
		}
	}
	if verdict.Sections < v.config.MinSections {
		verdict.Failed = append(verdict.Failed, CheckStructure)
	}

	verdict.Pass = len(verdict.Failed) == 0
	return verdict
}

// countSubstantial counts segments of text, split on sep, whose trimmed
// length exceeds minChars.
func countSubstantial(text, sep string, minChars int) int {
	count := 0
	for _, segment := range strings.Split(text, sep) {
		if len(strings.TrimSpace(segment)) > minChars {
			count++
		}
	}
	return count
}

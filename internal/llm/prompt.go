package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/localorganizer/organizer/internal/core"
)

// excerptPromptCap is the second, tighter excerpt cap applied inside the
// prompt itself, distinct from the Extractor's own cap.
const excerptPromptCap = 2048

const dateLayout = "2006-01-02 15:04:05"

// buildPrompt synthesizes the classification prompt for rec, grounded on
// ollama_analyzer.py's _get_content_analysis prompt shape, generalized from
// its ad hoc category/keywords/summary schema to the closed six-category
// Classification schema.
func buildPrompt(rec core.FileRecord) string {
	excerpt := ""
	if rec.ContentExcerpt != nil {
		excerpt = capExcerpt(*rec.ContentExcerpt, excerptPromptCap)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a file organizer. Classify the following file into exactly one category.\n\n")
	fmt.Fprintf(&sb, "Filename: %s\n", rec.FilenameBase())
	fmt.Fprintf(&sb, "Extension: %s\n", rec.Extension)
	fmt.Fprintf(&sb, "Size (bytes): %d\n", rec.Size)
	fmt.Fprintf(&sb, "Modified: %s\n", rec.ModTime.Format(dateLayout))
	fmt.Fprintf(&sb, "Content excerpt:\n%s\n\n", excerpt)
	fmt.Fprintf(&sb, "Allowed categories (choose exactly one): %s\n\n", strings.Join(categoryStrings(), ", "))
	sb.WriteString(schemaInstructions())
	return sb.String()
}

// buildCorrectionPrompt reissues the same filename/excerpt context with a
// restated schema and the specific validation error, so the model can
// retry and correct its prior response.
func buildCorrectionPrompt(rec core.FileRecord, validationErr string) string {
	excerpt := ""
	if rec.ContentExcerpt != nil {
		excerpt = capExcerpt(*rec.ContentExcerpt, excerptPromptCap/2)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Your previous response was invalid: %s\n\n", validationErr)
	fmt.Fprintf(&sb, "Filename: %s\n", rec.FilenameBase())
	fmt.Fprintf(&sb, "Extension: %s\n", rec.Extension)
	fmt.Fprintf(&sb, "Content excerpt:\n%s\n\n", excerpt)
	fmt.Fprintf(&sb, "Allowed categories (choose exactly one): %s\n\n", strings.Join(categoryStrings(), ", "))
	sb.WriteString(schemaInstructions())
	return sb.String()
}

func schemaInstructions() string {
	return `Return ONLY a valid JSON object with this exact structure:
{
    "category": "one of the allowed categories",
    "subcategory": "short free-form label or empty string",
    "subject": "short subject, 50 characters or fewer",
    "year": 2024,
    "suggested_name": "YYYY-MM-DD__category__subject.ext",
    "confidence": 0,
    "rationale": "one short sentence"
}

If your confidence would be below the minimum acceptable threshold, set
"category" to "` + string(core.CategoryInbox) + `" and explain why in "rationale".

Respond with ONLY valid JSON. No additional text, no markdown fences.`
}

func categoryStrings() []string {
	out := make([]string, len(core.ValidCategories))
	for i, c := range core.ValidCategories {
		out[i] = string(c)
	}
	return out
}

// capExcerpt truncates text to maxBytes without splitting a UTF-8 rune,
// mirroring the Python truncation in ollama_analyzer.py's analyze_content
// (byte-slice-then-note-truncation), adapted to be rune-boundary safe.
func capExcerpt(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return fmt.Sprintf("%s\n\n[Content truncated. Original length: %d characters]", text[:cut], len(text))
}

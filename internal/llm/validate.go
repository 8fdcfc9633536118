package llm

import (
	"fmt"

	"github.com/localorganizer/organizer/internal/core"
)

// validate converts a rawClassification into a core.Classification, checking
// required fields are present, category is in the closed set, confidence is
// in [0, 100], and year is in [1900, 2100]. The returned error string (when
// non-nil) is reused verbatim in the correction prompt.
func validate(rc *rawClassification) (*core.Classification, error) {
	if rc.Category == "" {
		return nil, fmt.Errorf("missing required field \"category\"")
	}
	if rc.SuggestedName == "" {
		return nil, fmt.Errorf("missing required field \"suggested_name\"")
	}

	category := core.Category(rc.Category)
	if !core.IsValidCategory(category) {
		return nil, fmt.Errorf("\"category\" %q is not one of the allowed categories", rc.Category)
	}
	if rc.Confidence < 0 || rc.Confidence > 100 {
		return nil, fmt.Errorf("\"confidence\" %d is outside [0, 100]", rc.Confidence)
	}
	if rc.Year < 1900 || rc.Year > 2100 {
		return nil, fmt.Errorf("\"year\" %d is outside [1900, 2100]", rc.Year)
	}

	c := core.Classification{
		Category:      category,
		Subcategory:   rc.Subcategory,
		Subject:       rc.Subject,
		Year:          rc.Year,
		SuggestedName: rc.SuggestedName,
		Confidence:    rc.Confidence,
		Rationale:     rc.Rationale,
		LLMUsed:       true,
	}
	if !c.Valid() {
		return nil, fmt.Errorf("classification failed invariant checks")
	}
	return &c, nil
}

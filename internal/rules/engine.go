// Package rules implements the ordered, first-match rule engine: a cheap,
// deterministic classifier that runs before the LLM classifier and only
// needs to say "I'm confident" or "defer".
package rules

import (
	"fmt"
	"strings"

	"github.com/localorganizer/organizer/internal/core"
)

// DefaultThreshold is the engine-wide minimum confidence a rule must declare
// to be allowed to match.
const DefaultThreshold = 85

// subjectMaxLength bounds the filename-stem fallback for Classification.Subject.
const subjectMaxLength = 50

// Stats aggregates Engine.Classify outcomes.
type Stats struct {
	TotalClassified int
	TotalUnmatched  int
	RuleHits        map[string]int
}

// Engine evaluates an ordered rule table against FileRecords.
type Engine struct {
	rules     []core.Rule
	threshold int
	stats     Stats
}

// New constructs an Engine over rules in declaration order, using threshold
// as the per-rule confidence floor. A threshold <= 0 selects DefaultThreshold.
func New(rules []core.Rule, threshold int) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{
		rules:     rules,
		threshold: threshold,
		stats:     Stats{RuleHits: make(map[string]int)},
	}
}

// Stats returns a snapshot of the engine's running counters.
func (e *Engine) Stats() Stats {
	hits := make(map[string]int, len(e.stats.RuleHits))
	for k, v := range e.stats.RuleHits {
		hits[k] = v
	}
	return Stats{TotalClassified: e.stats.TotalClassified, TotalUnmatched: e.stats.TotalUnmatched, RuleHits: hits}
}

// Classify returns a Classification for the first rule (in declaration
// order) whose pattern, size bounds, and keywords all match rec, and whose
// confidence meets the engine threshold. It returns nil if no rule matches.
func (e *Engine) Classify(rec core.FileRecord) *core.Classification {
	for i := range e.rules {
		rule := e.rules[i]

		if !matchesExtension(rule.Pattern, rec.Extension) {
			continue
		}
		if !sizeInBounds(rec.Size, rule.MinSizeMB, rule.MaxSizeMB) {
			continue
		}
		if !keywordsMatch(rule.Keywords, rec) {
			continue
		}
		if rule.Confidence < e.threshold {
			continue
		}

		e.stats.TotalClassified++
		e.stats.RuleHits[rule.RuleID]++
		c := synthesize(rule, rec)
		return &c
	}

	e.stats.TotalUnmatched++
	return nil
}

// sizeInBounds tests size (bytes) against rule bounds given in megabytes,
// inclusive on both ends. A nil bound is unconstrained.
func sizeInBounds(size int64, minMB, maxMB *float64) bool {
	sizeMB := float64(size) / 1_048_576
	if minMB != nil && sizeMB < *minMB {
		return false
	}
	if maxMB != nil && sizeMB > *maxMB {
		return false
	}
	return true
}

// keywordsMatch requires at least one case-insensitive substring match in
// content_excerpt plus filename when keywords is non-empty.
func keywordsMatch(keywords []string, rec core.FileRecord) bool {
	if len(keywords) == 0 {
		return true
	}

	haystack := rec.FilenameBase()
	if rec.ContentExcerpt != nil {
		haystack = *rec.ContentExcerpt + haystack
	}
	haystack = strings.ToLower(haystack)

	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// synthesize builds the Classification for a matched rule.
func synthesize(rule core.Rule, rec core.FileRecord) core.Classification {
	year := rec.ModTime.Year()
	subject := rule.Description
	if subject == "" {
		subject = truncateSubject(rec.FilenameBase())
	}

	dateStr := rec.ModTime.Format("2006-01-02")
	suggestedName := fmt.Sprintf("%s__%s__%s%s", dateStr, rule.Category, subject, rec.Extension)

	return core.Classification{
		Category:      rule.Category,
		Subcategory:   rule.Subcategory,
		Subject:       subject,
		Year:          year,
		SuggestedName: suggestedName,
		Confidence:    rule.Confidence,
		Rationale:     fmt.Sprintf("matched rule %s", rule.RuleID),
		RuleID:        rule.RuleID,
		LLMUsed:       false,
	}
}

func truncateSubject(s string) string {
	if len(s) <= subjectMaxLength {
		return s
	}
	return s[:subjectMaxLength]
}

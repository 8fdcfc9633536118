// Package planner turns (FileRecord, Classification-or-null) pairs into an
// ordered list of PlanItems, resolving destination paths and filename
// conflicts at plan time so the resulting plan is fully reviewable before
// anything touches the filesystem.
package planner

import (
	"time"

	"github.com/localorganizer/organizer/internal/core"
)

// noClassificationReason is the fixed SKIP reason for a null classification
// that carries no more specific reason (a rule-engine non-match with no LLM
// backend configured, or a backend that gave up without a usable response).
const noClassificationReason = "No classification available"

// Pair couples a FileRecord with its (possibly absent) Classification, the
// Planner's sole input unit. SkipReason overrides the SKIP reason used when
// Classification is nil; an empty SkipReason falls back to
// noClassificationReason. Callers set it to record, for example, that the
// LLM Classifier did answer but below the confidence gate -- "refused to
// guess" vs. "parked it" -- so a reviewer can tell the two apart in the plan
// file.
type Pair struct {
	Record         core.FileRecord
	Classification *core.Classification
	SkipReason     string
}

// Stats aggregates Planner.Plan output.
type Stats struct {
	TotalItems      int
	ActionCounts    map[core.Action]int
	CategoryCounts  map[core.Category]int
}

// Config controls Planner behavior.
type Config struct {
	BasePath      string
	DefaultAction core.Action
}

// Planner builds PlanItems from classified FileRecords.
type Planner struct {
	cfg   Config
	stats Stats
}

// New constructs a Planner. A zero-value DefaultAction defaults to MOVE.
func New(cfg Config) *Planner {
	if cfg.DefaultAction == "" {
		cfg.DefaultAction = core.ActionMove
	}
	return &Planner{
		cfg: cfg,
		stats: Stats{
			ActionCounts:   make(map[core.Action]int),
			CategoryCounts: make(map[core.Category]int),
		},
	}
}

// Stats returns a snapshot of the running counters.
func (p *Planner) Stats() Stats {
	actions := make(map[core.Action]int, len(p.stats.ActionCounts))
	for k, v := range p.stats.ActionCounts {
		actions[k] = v
	}
	categories := make(map[core.Category]int, len(p.stats.CategoryCounts))
	for k, v := range p.stats.CategoryCounts {
		categories[k] = v
	}
	return Stats{TotalItems: p.stats.TotalItems, ActionCounts: actions, CategoryCounts: categories}
}

// Plan builds an ordered list of PlanItems from pairs, resolving filename
// conflicts as it goes so each destination it returns is guaranteed free at
// plan time.
func (p *Planner) Plan(pairs []Pair) []core.PlanItem {
	items := make([]core.PlanItem, 0, len(pairs))
	assigned := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		item := p.planOne(pair, assigned)
		items = append(items, item)

		p.stats.TotalItems++
		p.stats.ActionCounts[item.Action]++
		if pair.Classification != nil {
			p.stats.CategoryCounts[pair.Classification.Category]++
		}
	}
	return items
}

func (p *Planner) planOne(pair Pair, assigned map[string]bool) core.PlanItem {
	if pair.Classification == nil {
		reason := noClassificationReason
		if pair.SkipReason != "" {
			reason = pair.SkipReason
		}
		return core.PlanItem{
			Action:     core.ActionSkip,
			Src:        pair.Record.Path,
			Dst:        nil,
			Reason:     reason,
			Confidence: 0,
			RuleID:     nil,
			LLMUsed:    false,
		}
	}

	c := *pair.Classification
	filename := resolveFilename(pair.Record, c)
	dst := destinationPath(p.cfg.BasePath, c, filename)
	dst = resolveConflict(dst, utcTimestampSuffix, assigned)
	assigned[dst] = true

	var ruleID *string
	if c.RuleID != "" {
		ruleID = &c.RuleID
	}

	return core.PlanItem{
		Action:     p.cfg.DefaultAction,
		Src:        pair.Record.Path,
		Dst:        &dst,
		Reason:     c.Rationale,
		Confidence: c.Confidence,
		RuleID:     ruleID,
		LLMUsed:    c.LLMUsed,
	}
}

func utcTimestampSuffix() string {
	return time.Now().UTC().Format("20060102T150405Z")
}

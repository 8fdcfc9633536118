package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/localorganizer/organizer/internal/core"
)

// PlanDocument is the machine-readable plan artifact.
type PlanDocument struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	BasePath      string          `json:"base_path"`
	DefaultAction core.Action     `json:"default_action"`
	Stats         PlanDocStats    `json:"stats"`
	Items         []core.PlanItem `json:"items"`
}

// PlanDocStats is the JSON-serializable shape of Stats.
type PlanDocStats struct {
	TotalItems     int                    `json:"total_items"`
	ActionCounts   map[core.Action]int    `json:"action_counts"`
	CategoryCounts map[core.Category]int  `json:"category_counts"`
}

// BuildDocument assembles the machine-readable plan artifact from the
// Planner's accumulated items and stats. Both artifacts this package
// produces (document and human-readable preview) are byproducts of the same
// in-memory plan.
func (p *Planner) BuildDocument(generatedAt time.Time, items []core.PlanItem) PlanDocument {
	s := p.Stats()
	return PlanDocument{
		GeneratedAt:   generatedAt,
		BasePath:      p.cfg.BasePath,
		DefaultAction: p.cfg.DefaultAction,
		Stats: PlanDocStats{
			TotalItems:     s.TotalItems,
			ActionCounts:   s.ActionCounts,
			CategoryCounts: s.CategoryCounts,
		},
		Items: items,
	}
}

// MarshalPretty renders doc as indented JSON for the plan file on disk.
func (doc PlanDocument) MarshalPretty() ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// RenderPreview produces the human-readable reviewer-facing document:
// summary counts followed by one line per item naming source, destination,
// confidence, and reason.
func RenderPreview(doc PlanDocument) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Plan generated at %s\n", doc.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Base path: %s\n", doc.BasePath)
	fmt.Fprintf(&sb, "Default action: %s\n", doc.DefaultAction)
	fmt.Fprintf(&sb, "Total items: %d\n\n", doc.Stats.TotalItems)

	fmt.Fprintln(&sb, "By action:")
	for action, count := range doc.Stats.ActionCounts {
		fmt.Fprintf(&sb, "  %-8s %d\n", action, count)
	}
	fmt.Fprintln(&sb, "\nBy category:")
	for category, count := range doc.Stats.CategoryCounts {
		fmt.Fprintf(&sb, "  %-24s %d\n", category, count)
	}

	fmt.Fprintln(&sb, "\nItems:")
	for _, item := range doc.Items {
		dst := "(none)"
		if item.Dst != nil {
			dst = *item.Dst
		}
		fmt.Fprintf(&sb, "  [%s] %s -> %s (confidence=%d) %s\n",
			item.Action, item.Src, dst, item.Confidence, item.Reason)
	}

	return sb.String()
}

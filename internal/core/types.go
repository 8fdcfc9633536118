// Package core defines the data types shared across every pipeline stage --
// Scanner, Extractor, Rule Engine, LLM Classifier, Planner, Executor. The
// top-level operations (Scan, Plan, Execute, Info) that compose them live in
// internal/pipeline.
//
// Every type here is treated as immutable: enrichment of a FileRecord by a
// later stage means constructing a new value, never mutating the one a
// previous stage produced.
package core

import (
	"strings"
	"time"
)

// Category is one of the six closed classification labels. Any other value
// fails validation.
type Category string

// The closed category set. CategoryInbox is the explicit fallback for
// material the system will not classify with confidence.
const (
	CategoryTrabalho Category = "01_Trabalho"
	CategoryFinancas Category = "02_Financas"
	CategoryEstudos  Category = "03_Estudos"
	CategoryLivros   Category = "04_Livros"
	CategoryPessoal  Category = "05_Pessoal"
	CategoryInbox    Category = "90_Inbox_Organizar"
)

// ValidCategories is the closed set in declaration order. Changing it is a
// breaking change for prompts and rule files.
var ValidCategories = []Category{
	CategoryTrabalho,
	CategoryFinancas,
	CategoryEstudos,
	CategoryLivros,
	CategoryPessoal,
	CategoryInbox,
}

// IsValidCategory reports whether c is a member of ValidCategories.
func IsValidCategory(c Category) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}

// FileRecord describes one file discovered by the Scanner and progressively
// enriched by the Extractor. It is never mutated in place -- each stage
// returns a new FileRecord value.
type FileRecord struct {
	// Path is the absolute filesystem path. Present and readable at creation
	// time (the Scanner only emits records for files it could stat).
	Path string `json:"path"`

	// Size is the byte count reported by stat. Always >= 0.
	Size int64 `json:"size"`

	// ModTime is the file's modification timestamp.
	ModTime time.Time `json:"mtime"`

	// CreateTime is the file's creation timestamp, where the platform
	// exposes one; it falls back to ModTime when unavailable (e.g. most
	// Linux filesystems do not expose a portable creation time via stdlib).
	CreateTime time.Time `json:"ctime"`

	// SHA256 is the lowercase hex digest of the file's contents, or nil if
	// the file could not be read (a permission error after a successful stat,
	// for example). A null hash does not remove the record from the stream.
	SHA256 *string `json:"sha256"`

	// Extension is normalized to lowercase including the leading dot, or
	// empty for extensionless files.
	Extension string `json:"extension"`

	// MIME is the detected media type, set by the Extractor. Nil until the
	// Extractor has processed the record.
	MIME *string `json:"mime"`

	// ContentExcerpt is a textual excerpt of the file's extracted content,
	// capped at the configured byte limit, or nil for unreadable/unsupported
	// formats. A nil excerpt is distinct from an empty string.
	ContentExcerpt *string `json:"content_excerpt"`
}

// WithMIME returns a copy of f with MIME set, leaving f untouched.
func (f FileRecord) WithMIME(mime string) FileRecord {
	f.MIME = &mime
	return f
}

// WithExcerpt returns a copy of f with ContentExcerpt set, leaving f
// untouched. Passing a nil excerpt clears it.
func (f FileRecord) WithExcerpt(excerpt *string) FileRecord {
	f.ContentExcerpt = excerpt
	return f
}

// FilenameBase returns the filename without its directory or extension.
func (f FileRecord) FilenameBase() string {
	name := f.Path
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	if f.Extension != "" && len(name) > len(f.Extension) {
		name = name[:len(name)-len(f.Extension)]
	}
	return name
}

// Classification is the semantic labelling of one file, produced by either
// the Rule Engine or the LLM Classifier.
type Classification struct {
	// Category is one of ValidCategories. Any other value is a validation
	// failure.
	Category Category `json:"category"`

	// Subcategory is a free-form short string; empty is allowed.
	Subcategory string `json:"subcategory"`

	// Subject is free-form, recommended <= 50 characters.
	Subject string `json:"subject"`

	// Year is the classification year, constrained to [1900, 2100].
	Year int `json:"year"`

	// SuggestedName is the proposed filename; the Planner sanitizes it
	// before use.
	SuggestedName string `json:"suggested_name"`

	// Confidence is an integer in [0, 100].
	Confidence int `json:"confidence"`

	// Rationale is a short natural-language justification.
	Rationale string `json:"rationale"`

	// RuleID is set when the classification came from the Rule Engine; empty
	// when it came from the LLM Classifier.
	RuleID string `json:"rule_id,omitempty"`

	// LLMUsed records whether the LLM Classifier produced this result.
	LLMUsed bool `json:"llm_used"`
}

// Valid reports whether c's category, confidence, and year are all
// in range.
func (c Classification) Valid() bool {
	return IsValidCategory(c.Category) &&
		c.Confidence >= 0 && c.Confidence <= 100 &&
		c.Year >= 1900 && c.Year <= 2100
}

// Rule is one entry in the Rule Engine's ordered table.
type Rule struct {
	RuleID      string   `toml:"rule_id"`
	Pattern     string   `toml:"pattern"`
	Category    Category `toml:"category"`
	Subcategory string   `toml:"subcategory"`
	Confidence  int      `toml:"confidence"`
	Description string   `toml:"description"`
	Keywords    []string `toml:"keywords"`
	MinSizeMB   *float64 `toml:"min_size_mb"`
	MaxSizeMB   *float64 `toml:"max_size_mb"`
}

// Action is one of the four PlanItem actions. There is no DELETE constant;
// Action is a plain string type, so any other value (DELETE included) can
// still be constructed, and the Executor fails an item whose action it does
// not recognise.
type Action string

const (
	ActionMove   Action = "MOVE"
	ActionCopy   Action = "COPY"
	ActionRename Action = "RENAME"
	ActionSkip   Action = "SKIP"
)

// PlanItem is one filesystem intention produced by the Planner.
type PlanItem struct {
	Action     Action  `json:"action"`
	Src        string  `json:"src"`
	Dst        *string `json:"dst"`
	Reason     string  `json:"reason"`
	Confidence int     `json:"confidence"`
	RuleID     *string `json:"rule_id"`
	LLMUsed    bool    `json:"llm_used"`
}

// Status is the outcome of executing one PlanItem.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusDryRun  Status = "dry-run"
)

// ExecutionResult is the outcome of executing one PlanItem.
type ExecutionResult struct {
	Status    Status    `json:"status"`
	PlanItem  PlanItem  `json:"plan_item"`
	Error     *string   `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

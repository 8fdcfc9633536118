// Package executor applies a Planner-produced plan to the filesystem, in
// dry-run or apply mode, and writes the audit manifest.
package executor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/localorganizer/organizer/internal/core"
)

// Mode selects dry-run or apply semantics.
type Mode string

const (
	ModeDryRun Mode = "dry-run"
	ModeApply  Mode = "apply"
)

// Stats aggregates Executor.Run outcomes.
type Stats struct {
	TotalExecuted int
	Successful    int
	Failed        int
	ActionCounts  map[core.Action]int
}

// Executor applies PlanItems to the filesystem. Because the Planner has
// already resolved conflicts, every MOVE/COPY/RENAME destination is expected
// to be free; if one exists at execution time the operation fails rather
// than overwriting it.
type Executor struct {
	logger *slog.Logger
	stats  Stats
}

// New constructs an Executor.
func New() *Executor {
	return &Executor{
		logger: slog.Default().With("component", "executor"),
		stats:  Stats{ActionCounts: make(map[core.Action]int)},
	}
}

// Stats returns a snapshot of the running counters.
func (e *Executor) Stats() Stats {
	actions := make(map[core.Action]int, len(e.stats.ActionCounts))
	for k, v := range e.stats.ActionCounts {
		actions[k] = v
	}
	return Stats{TotalExecuted: e.stats.TotalExecuted, Successful: e.stats.Successful, Failed: e.stats.Failed, ActionCounts: actions}
}

// Run executes items in order, never reordering them -- the plan's stored
// order is the order a reviewer signed off on. A failed item does not abort
// the run.
func (e *Executor) Run(items []core.PlanItem, mode Mode) []core.ExecutionResult {
	results := make([]core.ExecutionResult, 0, len(items))
	for _, item := range items {
		result := e.runOne(item, mode)
		results = append(results, result)

		e.stats.TotalExecuted++
		e.stats.ActionCounts[item.Action]++
		if result.Status == core.StatusSuccess || result.Status == core.StatusSkipped || result.Status == core.StatusDryRun {
			e.stats.Successful++
		} else {
			e.stats.Failed++
		}
	}
	return results
}

func (e *Executor) runOne(item core.PlanItem, mode Mode) core.ExecutionResult {
	timestamp := time.Now().UTC()

	if mode == ModeDryRun {
		return core.ExecutionResult{Status: core.StatusDryRun, PlanItem: item, Timestamp: timestamp}
	}

	var err error
	switch item.Action {
	case core.ActionMove:
		err = e.move(item)
	case core.ActionCopy:
		err = e.copy(item)
	case core.ActionRename:
		err = e.move(item) // rename is a same-volume move
	case core.ActionSkip:
		e.logger.Debug("skipping item", "src", item.Src, "reason", item.Reason)
		return core.ExecutionResult{Status: core.StatusSkipped, PlanItem: item, Timestamp: timestamp}
	default:
		err = fmt.Errorf("unknown action %q", item.Action)
	}

	if err != nil {
		msg := err.Error()
		e.logger.Error("item failed", "src", item.Src, "action", item.Action, "error", err)
		return core.ExecutionResult{Status: core.StatusFailed, PlanItem: item, Error: &msg, Timestamp: timestamp}
	}

	return core.ExecutionResult{Status: core.StatusSuccess, PlanItem: item, Timestamp: timestamp}
}

// move verifies the source exists, creates destination parents, and renames
// the file. A missing source or an existing destination is a hard failure.
func (e *Executor) move(item core.PlanItem) error {
	if item.Dst == nil {
		return fmt.Errorf("move requires a non-null destination")
	}
	if _, err := os.Stat(item.Src); err != nil {
		return fmt.Errorf("source does not exist: %w", err)
	}
	if _, err := os.Stat(*item.Dst); err == nil {
		return fmt.Errorf("destination already exists: %s", *item.Dst)
	}
	if err := os.MkdirAll(filepath.Dir(*item.Dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	if err := os.Rename(item.Src, *item.Dst); err != nil {
		return fmt.Errorf("move %s to %s: %w", item.Src, *item.Dst, err)
	}
	return nil
}

// copy verifies the source exists, creates destination parents, and copies
// file contents plus the mode bits, the only metadata the stdlib portably
// exposes across platforms.
func (e *Executor) copy(item core.PlanItem) error {
	if item.Dst == nil {
		return fmt.Errorf("copy requires a non-null destination")
	}
	info, err := os.Stat(item.Src)
	if err != nil {
		return fmt.Errorf("source does not exist: %w", err)
	}
	if _, err := os.Stat(*item.Dst); err == nil {
		return fmt.Errorf("destination already exists: %s", *item.Dst)
	}
	if err := os.MkdirAll(filepath.Dir(*item.Dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	src, err := os.Open(item.Src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(*item.Dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy %s to %s: %w", item.Src, *item.Dst, err)
	}
	return nil
}

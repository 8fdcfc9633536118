package executor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/localorganizer/organizer/internal/core"
)

// ManifestItem is one row of the manifest's items array.
type ManifestItem struct {
	Action    core.Action `json:"action"`
	Src       string      `json:"src"`
	Dst       *string     `json:"dst"`
	Status    core.Status `json:"status"`
	Error     *string     `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
}

// ManifestStats mirrors Stats in a JSON-serializable shape.
type ManifestStats struct {
	TotalExecuted int                 `json:"total_executed"`
	Successful    int                 `json:"successful"`
	Failed        int                 `json:"failed"`
	ActionCounts  map[core.Action]int `json:"action_counts"`
}

// Manifest is the sole audit record of an apply run, sufficient together
// with the original plan to drive an inverse operation.
type Manifest struct {
	ID         string         `json:"id"`
	ExecutedAt time.Time      `json:"executed_at"`
	DryRun     bool           `json:"dry_run"`
	BasePath   string         `json:"base_path"`
	Stats      ManifestStats  `json:"stats"`
	Items      []ManifestItem `json:"items"`
}

// BuildManifest assembles a Manifest from execution results. The ID is a
// fresh UUID, the same stable-id role google/uuid plays elsewhere in the
// ecosystem for durable record identity.
func BuildManifest(basePath string, mode Mode, stats Stats, results []core.ExecutionResult) Manifest {
	items := make([]ManifestItem, len(results))
	for i, r := range results {
		items[i] = ManifestItem{
			Action: r.PlanItem.Action, Src: r.PlanItem.Src, Dst: r.PlanItem.Dst,
			Status: r.Status, Error: r.Error, Timestamp: r.Timestamp,
		}
	}

	return Manifest{
		ID:         uuid.NewString(),
		ExecutedAt: time.Now().UTC(),
		DryRun:     mode == ModeDryRun,
		BasePath:   basePath,
		Stats: ManifestStats{
			TotalExecuted: stats.TotalExecuted,
			Successful:    stats.Successful,
			Failed:        stats.Failed,
			ActionCounts:  stats.ActionCounts,
		},
		Items: items,
	}
}

// manifestFilename names a manifest file by UTC timestamp.
func manifestFilename(executedAt time.Time) string {
	return fmt.Sprintf("manifest-%s.json", executedAt.Format("20060102T150405Z"))
}

// WriteManifest serializes m as indented JSON into logDir, creating the
// directory if needed, and returns the written path.
func WriteManifest(logDir string, m Manifest) (string, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(logDir, manifestFilename(m.ExecutedAt))
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest %s: %w", path, err)
	}
	return path, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/localorganizer/organizer/internal/config"
	"github.com/localorganizer/organizer/internal/core"
	"github.com/localorganizer/organizer/internal/executor"
	"github.com/localorganizer/organizer/internal/extractor"
	"github.com/localorganizer/organizer/internal/llm"
	"github.com/localorganizer/organizer/internal/planner"
	"github.com/localorganizer/organizer/internal/rules"
	"github.com/localorganizer/organizer/internal/scanner"
)

// ScanResult is the aggregate output of the Scan operation: every discovered
// file, enriched with MIME type and content excerpt, plus the Scanner's and
// Extractor's combined statistics.
type ScanResult struct {
	Files        []core.FileRecord
	ScanStats    scanner.Stats
	ExtractStats extractor.Stats
}

// Scan walks root, hashes and stats every surviving file (Scanner), then
// extracts a best-effort content excerpt for each one (Extractor). It is the
// first of the four core operations.
func Scan(ctx context.Context, root string, cfg config.BackendConfig) (*ScanResult, error) {
	logger := config.NewLogger("pipeline")

	sc := scanner.New()
	scanRes, err := sc.Scan(ctx, scanner.Config{
		Root:        root,
		MinFileSize: cfg.MinFileSizeBytes,
	})
	if err != nil {
		return nil, core.NewFatalError("scan root", err)
	}

	ext := extractor.New(extractor.Config{MaxExcerptBytes: cfg.MaxExcerptBytes})
	files := make([]core.FileRecord, len(scanRes.Files))
	for i, rec := range scanRes.Files {
		files[i] = ext.Process(ctx, rec)
	}

	logger.Info("scan complete",
		"files_scanned", scanRes.Stats.FilesScanned,
		"files_excluded", scanRes.Stats.FilesExcluded,
		"extraction_errors", ext.Stats().ExtractionErrors,
	)

	return &ScanResult{Files: files, ScanStats: scanRes.Stats, ExtractStats: ext.Stats()}, nil
}

// classify runs the closed rule engine over every record, falling back to the
// LLM classifier (when cfg.Backend selects one) for records the rule engine
// left unmatched. The second return value carries a SkipReason override
// (see planner.Pair) for every index whose Classification is nil because the
// LLM answered below the confidence gate, rather than because nothing ever
// ran; all other indices hold an empty string.
func classify(ctx context.Context, files []core.FileRecord, cfg config.BackendConfig) ([]*core.Classification, []string) {
	ruleSet := rules.DefaultRules()
	engine := rules.New(ruleSet, cfg.RuleThreshold)

	results := make([]*core.Classification, len(files))
	skipReasons := make([]string, len(files))
	var pendingIdx []int
	for i, rec := range files {
		if c := engine.Classify(rec); c != nil {
			results[i] = c
		} else {
			pendingIdx = append(pendingIdx, i)
		}
	}

	if cfg.Backend != config.BackendOllama || len(pendingIdx) == 0 {
		return results, skipReasons
	}

	client := llm.NewClient(llm.ClientConfig{
		Endpoint: cfg.EndpointURL,
		Model:    cfg.Model,
		Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	classifier := llm.NewClassifier(client, llm.ClassifierConfig{
		MaxConcurrent: cfg.MaxConcurrent,
		MaxRetries:    cfg.MaxRetries,
		MinConfidence: cfg.MinConfidence,
	})

	pending := make([]core.FileRecord, len(pendingIdx))
	for i, idx := range pendingIdx {
		pending[i] = files[idx]
	}
	llmResults := classifier.ClassifyBatch(ctx, pending)
	for i, idx := range pendingIdx {
		r := llmResults[i]
		results[idx] = r.Classification
		if r.LowConfidence {
			skipReasons[idx] = llm.LowConfidenceReason(r.Confidence, r.Threshold)
		}
	}
	return results, skipReasons
}

// Plan scans root, classifies every file, resolves destination paths and
// conflicts, and writes both plan artifacts to outputDir. It returns the
// path of the machine-readable plan file.
func Plan(ctx context.Context, root string, cfg config.BackendConfig, outputDir string) (string, error) {
	scanRes, err := Scan(ctx, root, cfg)
	if err != nil {
		return "", err
	}

	classifications, skipReasons := classify(ctx, scanRes.Files, cfg)

	pairs := make([]planner.Pair, len(scanRes.Files))
	for i, rec := range scanRes.Files {
		pairs[i] = planner.Pair{Record: rec, Classification: classifications[i], SkipReason: skipReasons[i]}
	}

	p := planner.New(planner.Config{BasePath: outputDir, DefaultAction: cfg.DefaultAction})
	items := p.Plan(pairs)
	doc := p.BuildDocument(time.Now().UTC(), items)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", core.NewFatalError("create output directory", err)
	}

	data, err := doc.MarshalPretty()
	if err != nil {
		return "", core.NewFatalError("marshal plan", err)
	}
	planPath := filepath.Join(outputDir, fmt.Sprintf("plan-%s.json", doc.GeneratedAt.Format("20060102T150405Z")))
	if err := os.WriteFile(planPath, data, 0o644); err != nil {
		return "", core.NewFatalError("write plan file", err)
	}

	previewPath := filepath.Join(outputDir, fmt.Sprintf("plan-%s.txt", doc.GeneratedAt.Format("20060102T150405Z")))
	if err := os.WriteFile(previewPath, []byte(planner.RenderPreview(doc)), 0o644); err != nil {
		return "", core.NewFatalError("write plan preview", err)
	}

	return planPath, nil
}

// ExecuteResult is the aggregate output of the Execute operation.
type ExecuteResult struct {
	Results      []core.ExecutionResult
	Stats        executor.Stats
	ManifestPath string // empty in dry-run mode
}

// Execute reads the plan at planPath and runs it. In apply mode a manifest
// is written to logDir and its path returned; in dry-run mode ManifestPath
// is empty.
func Execute(ctx context.Context, planPath string, apply bool, logDir string) (*ExecuteResult, error) {
	data, err := os.ReadFile(planPath)
	if err != nil {
		return nil, core.NewFatalError("read plan file", err)
	}

	var doc planner.PlanDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, core.NewFatalError("parse plan file", err)
	}

	mode := executor.ModeDryRun
	if apply {
		mode = executor.ModeApply
	}

	e := executor.New()
	results := e.Run(doc.Items, mode)

	out := &ExecuteResult{Results: results, Stats: e.Stats()}
	if apply {
		manifest := executor.BuildManifest(doc.BasePath, mode, e.Stats(), results)
		path, err := executor.WriteManifest(logDir, manifest)
		if err != nil {
			return out, core.NewFatalError("write manifest", err)
		}
		out.ManifestPath = path
	}

	if e.Stats().Failed > 0 {
		return out, core.NewOperationalError(
			fmt.Sprintf("%d of %d items failed", e.Stats().Failed, e.Stats().TotalExecuted), nil)
	}
	return out, nil
}

// InfoSnapshot is the configuration snapshot returned by Info: chosen
// backend, chosen model, detected hardware tier, and endpoint reachability.
type InfoSnapshot struct {
	Backend           string
	Model             string
	HardwareTier      string
	EndpointURL       string
	EndpointReachable bool
}

// Info reports the resolved backend configuration and, for the ollama
// backend, the endpoint URL and whether it currently responds. For any other
// backend EndpointURL is left empty.
func Info(ctx context.Context, cfg config.BackendConfig) InfoSnapshot {
	snap := InfoSnapshot{
		Backend:      cfg.Backend,
		Model:        cfg.Model,
		HardwareTier: cfg.HardwareTier,
	}

	if cfg.Backend == config.BackendOllama {
		snap.EndpointURL = cfg.EndpointURL
		client := llm.NewClient(llm.ClientConfig{Endpoint: cfg.EndpointURL})
		snap.EndpointReachable = client.HealthCheck(ctx)
	}

	slog.Default().With("component", "pipeline").Debug("info snapshot", "snapshot", snap)
	return snap
}

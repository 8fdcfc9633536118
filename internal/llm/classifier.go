package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/localorganizer/organizer/internal/core"
)

// ClassifierConfig controls batch execution and the confidence gate.
type ClassifierConfig struct {
	MaxConcurrent int
	MaxRetries    int
	MinConfidence int
	// RequestsPerSecond paces outgoing requests beyond the concurrency cap;
	// zero disables pacing.
	RequestsPerSecond float64
}

func (c ClassifierConfig) withDefaults() ClassifierConfig {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 4
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = 85
	}
	return c
}

// Stats aggregates Classifier.ClassifyBatch outcomes.
type Stats struct {
	Successful        int
	LowConfidence     int
	Failed            int
	RetryCount        int
	PromptCount       int
	TotalPromptTokens int
}

// AvgPromptTokens returns the mean tiktoken-counted size of every prompt
// ClassifyBatch sent to the endpoint, across all attempts including
// retries, or 0 if none were sent yet.
func (s Stats) AvgPromptTokens() float64 {
	if s.PromptCount == 0 {
		return 0
	}
	return float64(s.TotalPromptTokens) / float64(s.PromptCount)
}

// ClassifyResult is the per-record outcome of ClassifyBatch. Classification
// is nil both when the model never produced a usable answer and when it did
// but fell below the confidence gate -- LowConfidence, Confidence, and
// Threshold distinguish the latter case so a caller can record a reason
// distinct from a plain non-match.
type ClassifyResult struct {
	Classification *core.Classification
	LowConfidence  bool
	Confidence     int
	Threshold      int
}

// LowConfidenceReason formats the Planner-visible reason for a result whose
// LowConfidence field is set.
func LowConfidenceReason(confidence, threshold int) string {
	return fmt.Sprintf("llm confidence %d below threshold %d; unclassified", confidence, threshold)
}

// Classifier drives the LLM batch classification stage: bounded-concurrency
// fan-out over a Client, with per-record retry-with-correction and a
// confidence gate, restoring input order before returning.
type Classifier struct {
	client  *Client
	cfg     ClassifierConfig
	limiter *rate.Limiter
	logger  *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewClassifier constructs a Classifier over client.
func NewClassifier(client *Client, cfg ClassifierConfig) *Classifier {
	cfg = cfg.withDefaults()
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.MaxConcurrent)
	}
	return &Classifier{
		client:  client,
		cfg:     cfg,
		limiter: limiter,
		logger:  slog.Default().With("component", "llm-classifier"),
	}
}

// Stats returns a snapshot of the running counters.
func (c *Classifier) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ClassifyBatch classifies each record in recs, fanning out up to
// cfg.MaxConcurrent requests at a time, and returns results in the same
// order as recs. A nil Classification means the file could not be
// confidently classified -- the caller (Planner) decides what to do with it,
// using LowConfidence to distinguish why.
func (c *Classifier) ClassifyBatch(ctx context.Context, recs []core.FileRecord) []ClassifyResult {
	results := make([]ClassifyResult, len(recs))
	sem := semaphore.NewWeighted(int64(c.cfg.MaxConcurrent))

	var wg sync.WaitGroup
	for i := range recs {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled; remaining slots are left nil.
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = c.classifyOne(ctx, recs[i])
		}()
	}
	wg.Wait()

	return results
}

// classifyOne runs the retry-with-correction loop for a single record.
func (c *Classifier) classifyOne(ctx context.Context, rec core.FileRecord) ClassifyResult {
	prompt := buildPrompt(rec)
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.mu.Lock()
			c.stats.RetryCount++
			c.mu.Unlock()
			prompt = buildCorrectionPrompt(rec, errString(lastErr))
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				c.recordFailed()
				return ClassifyResult{}
			}
		}

		c.recordPromptTokens(prompt)

		raw, err := c.client.Generate(ctx, prompt)
		if err != nil {
			lastErr = err
			c.logger.Debug("generate failed", "path", rec.Path, "attempt", attempt, "error", err)
			continue
		}

		parsed, err := parseResponse(raw)
		if err != nil {
			lastErr = err
			c.logger.Debug("response parse failed", "path", rec.Path, "attempt", attempt, "error", err)
			continue
		}
		if parsed.Year == 0 {
			parsed.Year = rec.ModTime.Year()
		}

		classification, err := validate(parsed)
		if err != nil {
			lastErr = err
			c.logger.Debug("response validation failed", "path", rec.Path, "attempt", attempt, "error", err)
			continue
		}

		if classification.Confidence < c.cfg.MinConfidence {
			c.recordLowConfidence()
			return ClassifyResult{LowConfidence: true, Confidence: classification.Confidence, Threshold: c.cfg.MinConfidence}
		}

		c.recordSuccess()
		return ClassifyResult{Classification: classification}
	}

	c.recordFailed()
	return ClassifyResult{}
}

func (c *Classifier) recordSuccess() {
	c.mu.Lock()
	c.stats.Successful++
	c.mu.Unlock()
}

func (c *Classifier) recordLowConfidence() {
	c.mu.Lock()
	c.stats.LowConfidence++
	c.mu.Unlock()
}

func (c *Classifier) recordFailed() {
	c.mu.Lock()
	c.stats.Failed++
	c.mu.Unlock()
}

func (c *Classifier) recordPromptTokens(prompt string) {
	tok := countPromptTokens(prompt, "")
	c.mu.Lock()
	c.stats.PromptCount++
	c.stats.TotalPromptTokens += tok.PromptTokens
	c.mu.Unlock()
}

func errString(err error) string {
	if err == nil {
		return "empty or unparseable response"
	}
	return err.Error()
}

package config

import "github.com/localorganizer/organizer/internal/core"

// DefaultBackendConfig returns a new BackendConfig populated with the
// package's built-in defaults. This is the base Merge starts from before
// applying a hardware-tier preset and then caller overrides.
//
// Callers receive a fresh copy each time; mutating the returned value does
// not affect subsequent calls.
func DefaultBackendConfig() *BackendConfig {
	return &BackendConfig{
		Backend:          BackendOllama,
		Model:            "",
		EndpointURL:      DefaultEndpointDefault,
		TimeoutSeconds:   60,
		BatchSize:        0,
		MaxConcurrent:    0,
		MinConfidence:    85,
		MaxRetries:       3,
		DefaultAction:    core.ActionMove,
		MinFileSizeBytes: 1024,
		MaxExcerptBytes:  8192,
		RuleThreshold:    85,
		HardwareTier:     "",
	}
}

// DefaultEndpointDefault mirrors ollama_analyzer.py's DEFAULT_URL.
const DefaultEndpointDefault = "http://localhost:11434"

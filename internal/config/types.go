package config

import "github.com/localorganizer/organizer/internal/core"

// BackendConfig is the top-level configuration record accepted by the core
// operations. Zero values are considered unset and are filled in by Merge
// from hardware-tier presets and package defaults.
type BackendConfig struct {
	// Backend selects rule-only classification or a named LLM endpoint.
	Backend string `toml:"backend" koanf:"backend"`

	// Model is the model identifier forwarded to the endpoint.
	Model string `toml:"model" koanf:"model"`

	// EndpointURL is the base URL of the local inference service.
	EndpointURL string `toml:"endpoint_url" koanf:"endpoint_url"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `toml:"timeout_s" koanf:"timeout_s"`

	// BatchSize and MaxConcurrent override hardware-tier defaults.
	BatchSize     int `toml:"batch_size" koanf:"batch_size"`
	MaxConcurrent int `toml:"max_concurrent" koanf:"max_concurrent"`

	// MinConfidence is the confidence gate; default 85.
	MinConfidence int `toml:"min_confidence" koanf:"min_confidence"`

	// MaxRetries is the LLM correction-attempt ceiling; default 3.
	MaxRetries int `toml:"max_retries" koanf:"max_retries"`

	// DefaultAction is MOVE or COPY.
	DefaultAction core.Action `toml:"default_action" koanf:"default_action"`

	// MinFileSizeBytes is the Scanner cutoff.
	MinFileSizeBytes int64 `toml:"min_file_size_bytes" koanf:"min_file_size_bytes"`

	// MaxExcerptBytes is the Extractor cap.
	MaxExcerptBytes int `toml:"max_excerpt_bytes" koanf:"max_excerpt_bytes"`

	// RuleThreshold is the Rule Engine's per-rule confidence floor.
	RuleThreshold int `toml:"rule_threshold" koanf:"rule_threshold"`

	// HardwareTier forces a tier instead of auto-detecting one; empty
	// selects auto-detection.
	HardwareTier string `toml:"hardware_tier" koanf:"hardware_tier"`
}

// BackendRuleOnly and BackendOllama are the recognized values for
// BackendConfig.Backend.
const (
	BackendRuleOnly = "rule-only"
	BackendOllama   = "ollama"
)

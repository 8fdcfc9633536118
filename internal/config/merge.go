package config

import (
	"context"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Merge layers three configuration sources, lowest precedence first:
//
//  1. DefaultBackendConfig() -- the package's built-in defaults.
//  2. The hardware-tier preset for override.HardwareTier (or the
//     auto-detected tier if override.HardwareTier is empty) -- fills in
//     BatchSize/MaxConcurrent/Model only where override left them unset.
//  3. override itself -- any non-zero-value field in override wins.
//
// Each layer is loaded into a koanf.Koanf via confmap.Provider so later
// layers only replace the keys they actually carry; a zero-valued field in
// override never stomps a default or tier-derived value. Neither argument is
// mutated.
func Merge(ctx context.Context, override *BackendConfig) (*BackendConfig, error) {
	if override == nil {
		override = &BackendConfig{}
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(structToMap(DefaultBackendConfig()), "."), nil); err != nil {
		return nil, err
	}

	tier := HardwareTier(override.HardwareTier)
	if tier == "" {
		tier = DetectTier(ctx)
	}
	preset := PresetFor(tier)
	tierLayer := map[string]interface{}{
		"batch_size":     preset.BatchSize,
		"max_concurrent": preset.MaxConcurrent,
		"model":          preset.DefaultModel,
		"hardware_tier":  string(tier),
	}
	if err := k.Load(confmap.Provider(tierLayer, "."), nil); err != nil {
		return nil, err
	}

	if err := k.Load(confmap.Provider(structToMap(override), "."), nil); err != nil {
		return nil, err
	}

	var merged BackendConfig
	if err := k.UnmarshalWithConf("", &merged, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	return &merged, nil
}

// structToMap flattens the non-zero-valued fields of cfg into a map keyed by
// koanf tag, so a koanf.Load layer only overrides the keys the caller
// actually set.
func structToMap(cfg *BackendConfig) map[string]interface{} {
	m := map[string]interface{}{}
	if cfg.Backend != "" {
		m["backend"] = cfg.Backend
	}
	if cfg.Model != "" {
		m["model"] = cfg.Model
	}
	if cfg.EndpointURL != "" {
		m["endpoint_url"] = cfg.EndpointURL
	}
	if cfg.TimeoutSeconds != 0 {
		m["timeout_s"] = cfg.TimeoutSeconds
	}
	if cfg.BatchSize != 0 {
		m["batch_size"] = cfg.BatchSize
	}
	if cfg.MaxConcurrent != 0 {
		m["max_concurrent"] = cfg.MaxConcurrent
	}
	if cfg.MinConfidence != 0 {
		m["min_confidence"] = cfg.MinConfidence
	}
	if cfg.MaxRetries != 0 {
		m["max_retries"] = cfg.MaxRetries
	}
	if cfg.DefaultAction != "" {
		m["default_action"] = string(cfg.DefaultAction)
	}
	if cfg.MinFileSizeBytes != 0 {
		m["min_file_size_bytes"] = cfg.MinFileSizeBytes
	}
	if cfg.MaxExcerptBytes != 0 {
		m["max_excerpt_bytes"] = cfg.MaxExcerptBytes
	}
	if cfg.RuleThreshold != 0 {
		m["rule_threshold"] = cfg.RuleThreshold
	}
	if cfg.HardwareTier != "" {
		m["hardware_tier"] = cfg.HardwareTier
	}
	return m
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/localorganizer/organizer/internal/core"
)

func TestMerge_OverrideWinsOverDefaultsAndTier(t *testing.T) {
	t.Parallel()

	override := &BackendConfig{
		HardwareTier:  string(TierLowEnd),
		MinConfidence: 95,
		Backend:       BackendRuleOnly,
	}

	merged, err := Merge(t.Context(), override)
	require.NoError(t, err)

	require.Equal(t, BackendRuleOnly, merged.Backend, "explicit override beats the default backend")
	require.Equal(t, 95, merged.MinConfidence, "explicit override beats the default min_confidence")
	require.Equal(t, string(TierLowEnd), merged.HardwareTier)
	require.Equal(t, PresetFor(TierLowEnd).BatchSize, merged.BatchSize, "unset batch size falls through to the tier preset")
	require.Equal(t, PresetFor(TierLowEnd).DefaultModel, merged.Model, "unset model falls through to the tier preset")
}

func TestMerge_OverrideModelBeatsTierPreset(t *testing.T) {
	t.Parallel()

	override := &BackendConfig{
		HardwareTier: string(TierLowEnd),
		Model:        "qwen2.5:32b",
	}

	merged, err := Merge(t.Context(), override)
	require.NoError(t, err)

	require.Equal(t, "qwen2.5:32b", merged.Model)
}

func TestMerge_NilOverrideYieldsDefaultsPlusDetectedTier(t *testing.T) {
	t.Parallel()

	merged, err := Merge(t.Context(), nil)
	require.NoError(t, err)

	require.Equal(t, BackendOllama, merged.Backend)
	require.Equal(t, 85, merged.MinConfidence)
	require.Equal(t, core.ActionMove, merged.DefaultAction)
	require.NotEmpty(t, merged.HardwareTier, "Merge always resolves a concrete tier, auto-detected or not")
}

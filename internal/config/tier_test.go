package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForVRAM_ThresholdBoundaries(t *testing.T) {
	t.Parallel()

	gb := func(v float64) *float64 { return &v }

	cases := []struct {
		name string
		vram *float64
		want HardwareTier
	}{
		{"nil is cpu", nil, TierCPU},
		{"zero is cpu", gb(0), TierCPU},
		{"just under low_end", gb(4.9), TierCPU},
		{"low_end boundary", gb(5), TierLowEnd},
		{"mid_range boundary", gb(10), TierMidRange},
		{"upper_mid_range boundary", gb(14), TierUpperMidRange},
		{"high_end boundary", gb(20), TierHighEnd},
		{"ultra_high_end boundary", gb(40), TierUltraHighEnd},
		{"well above ultra", gb(80), TierUltraHighEnd},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TierForVRAM(tc.vram))
		})
	}
}

func TestPresetFor_KnownAndUnknownTiers(t *testing.T) {
	t.Parallel()

	p := PresetFor(TierHighEnd)
	assert.Equal(t, 16, p.BatchSize)
	assert.Equal(t, 8, p.MaxConcurrent)
	assert.Equal(t, "qwen2.5:14b", p.DefaultModel)

	unknown := PresetFor(HardwareTier("not-a-real-tier"))
	assert.Equal(t, PresetFor(TierCPU), unknown, "unrecognized tier falls back to the cpu preset")
}

func TestDetectVRAM_NeverPanicsWithoutNvidiaSmi(t *testing.T) {
	t.Parallel()
	// No assertion on the result itself -- whether nvidia-smi exists depends
	// on the host running the test. This only verifies the probe degrades
	// gracefully rather than panicking or hanging.
	_ = DetectVRAM(t.Context())
}

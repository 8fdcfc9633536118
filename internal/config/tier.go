package config

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// HardwareTier is one of the six accelerator-memory tiers, a direct port of
// gpu_detector.py's GPUDetector.TIERS.
type HardwareTier string

const (
	TierUltraHighEnd HardwareTier = "ultra_high_end"
	TierHighEnd      HardwareTier = "high_end"
	TierUpperMidRange HardwareTier = "upper_mid_range"
	TierMidRange     HardwareTier = "mid_range"
	TierLowEnd       HardwareTier = "low_end"
	TierCPU          HardwareTier = "cpu"
)

// tierOrder maps each tier to its minimum VRAM threshold in GB, in
// descending-threshold evaluation order, ported verbatim from
// GPUDetector.TIERS.
var tierOrder = []struct {
	tier      HardwareTier
	thresholdGB float64
}{
	{TierUltraHighEnd, 40},
	{TierHighEnd, 20},
	{TierUpperMidRange, 14},
	{TierMidRange, 10},
	{TierLowEnd, 5},
	{TierCPU, 0},
}

// TierPreset is the (batch_size, max_concurrent, default_model) triple a
// tier maps to.
type TierPreset struct {
	BatchSize     int
	MaxConcurrent int
	DefaultModel  string
}

// tierPresets is a direct port of GPUDetector._default_config.
var tierPresets = map[HardwareTier]TierPreset{
	TierUltraHighEnd:  {BatchSize: 32, MaxConcurrent: 16, DefaultModel: "qwen2.5:14b"},
	TierHighEnd:       {BatchSize: 16, MaxConcurrent: 8, DefaultModel: "qwen2.5:14b"},
	TierUpperMidRange: {BatchSize: 12, MaxConcurrent: 6, DefaultModel: "qwen2.5:7b"},
	TierMidRange:      {BatchSize: 8, MaxConcurrent: 4, DefaultModel: "qwen2.5:7b"},
	TierLowEnd:        {BatchSize: 4, MaxConcurrent: 2, DefaultModel: "qwen2.5:3b"},
	TierCPU:           {BatchSize: 2, MaxConcurrent: 1, DefaultModel: "qwen2.5:3b"},
}

// PresetFor returns the preset for tier, defaulting to the CPU preset for an
// unrecognized tier name.
func PresetFor(tier HardwareTier) TierPreset {
	if p, ok := tierPresets[tier]; ok {
		return p
	}
	return tierPresets[TierCPU]
}

// TierForVRAM maps a VRAM amount in GB to a tier, evaluating thresholds in
// descending order and falling back to TierCPU
// (GPUDetector.get_tier). A nil vramGB (no GPU detected) is TierCPU.
func TierForVRAM(vramGB *float64) HardwareTier {
	if vramGB == nil {
		return TierCPU
	}
	for _, entry := range tierOrder {
		if *vramGB >= entry.thresholdGB {
			return entry.tier
		}
	}
	return TierCPU
}

// DetectVRAM shells out to nvidia-smi to read total GPU memory, the same
// cross-platform probe GPUDetector._detect_vram_windows/_unix uses (NVIDIA
// tooling works identically on Windows/Linux/macOS). Returns nil if no GPU
// is detected or nvidia-smi is unavailable -- this is never a fatal
// condition, only a fallback to TierCPU.
func DetectVRAM(ctx context.Context) *float64 {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=memory.total", "--format=csv,noheader,nounits")
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return nil
	}

	vramMB, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if err != nil {
		return nil
	}

	vramGB := vramMB / 1024
	return &vramGB
}

// DetectTier auto-detects the hardware tier via DetectVRAM + TierForVRAM
// (GPUDetector.auto_configure).
func DetectTier(ctx context.Context) HardwareTier {
	return TierForVRAM(DetectVRAM(ctx))
}

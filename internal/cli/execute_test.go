package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localorganizer/organizer/internal/config"
	"github.com/localorganizer/organizer/internal/pipeline"
)

func TestRunExecute_DryRunReportsCountsWithoutManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "fatura_janeiro.pdf"), []byte("FATURA referente a janeiro"), 0o644))
	outDir := t.TempDir()

	cfg := *config.DefaultBackendConfig()
	cfg.Backend = config.BackendRuleOnly
	cfg.MinFileSizeBytes = 1
	planPath, err := pipeline.Plan(t.Context(), root, cfg, outDir)
	require.NoError(t, err)

	resetFlagValues(t)
	flagValues.Output = outDir
	executeFlags.PlanPath = planPath
	executeFlags.Apply = false
	executeFlags.LogDir = ""
	t.Cleanup(func() {
		executeFlags.PlanPath = ""
		executeFlags.Apply = false
		executeFlags.LogDir = ""
	})

	cmd := executeCmd
	cmd.SetContext(t.Context())
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runExecute(cmd, nil))
	assert.Contains(t, out.String(), "executed:  1")
	assert.NotContains(t, out.String(), "manifest:")
}

func TestRunExecute_ApplyWritesManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "fatura_janeiro.pdf"), []byte("FATURA referente a janeiro"), 0o644))
	outDir := t.TempDir()

	cfg := *config.DefaultBackendConfig()
	cfg.Backend = config.BackendRuleOnly
	cfg.MinFileSizeBytes = 1
	planPath, err := pipeline.Plan(t.Context(), root, cfg, outDir)
	require.NoError(t, err)

	resetFlagValues(t)
	flagValues.Output = outDir
	executeFlags.PlanPath = planPath
	executeFlags.Apply = true
	executeFlags.LogDir = ""
	t.Cleanup(func() {
		executeFlags.PlanPath = ""
		executeFlags.Apply = false
		executeFlags.LogDir = ""
	})

	cmd := executeCmd
	cmd.SetContext(t.Context())
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runExecute(cmd, nil))
	assert.Contains(t, out.String(), "manifest:")
}

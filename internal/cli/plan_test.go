package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localorganizer/organizer/internal/config"
)

func TestRunPlan_WritesPlanFileAndPrintsNextSteps(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "fatura_janeiro.pdf"), []byte("FATURA referente a janeiro"), 0o644))
	outDir := t.TempDir()

	resetFlagValues(t)
	flagValues.Root = root
	flagValues.Output = outDir

	configFile := filepath.Join(t.TempDir(), "organizer.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("backend = \""+config.BackendRuleOnly+"\"\nmin_file_size_bytes = 1\n"), 0o644))
	flagValues.ConfigFile = configFile

	cmd := planCmd
	cmd.SetContext(t.Context())
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runPlan(cmd, nil))
	assert.Contains(t, out.String(), "plan written:")
	assert.Contains(t, out.String(), "organizer execute --plan")
}

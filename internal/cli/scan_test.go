package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScan_ReportsScanStatsForPopulatedRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), bytes.Repeat([]byte("fatura de janeiro "), 64), 0o644))

	resetFlagValues(t)
	flagValues.Root = root

	cmd := scanCmd
	cmd.SetContext(t.Context())
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runScan(cmd, nil))
	assert.Contains(t, out.String(), "files scanned:     1")
}

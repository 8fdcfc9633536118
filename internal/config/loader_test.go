package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
backend = "ollama"
model = "qwen2.5:7b"
endpoint_url = "http://gpu-box:11434"
min_confidence = 90
`

func TestLoadFromString_DecodesRecognizedFields(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromString(sampleTOML, "inline")
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Backend)
	assert.Equal(t, "qwen2.5:7b", cfg.Model)
	assert.Equal(t, "http://gpu-box:11434", cfg.EndpointURL)
	assert.Equal(t, 90, cfg.MinConfidence)
	assert.Zero(t, cfg.MaxRetries, "fields absent from the TOML stay at the Go zero value")
}

func TestLoadFromFile_ReadsFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "organizer.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Backend)
}

func TestLoadFromString_InvalidTOMLReturnsError(t *testing.T) {
	t.Parallel()

	_, err := LoadFromString("this is not [ valid toml", "bad")
	assert.Error(t, err)
}

func TestLoadFromString_UnknownKeysAreIgnoredNotFatal(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromString(sampleTOML+"\nsome_future_option = true\n", "inline")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Backend)
}

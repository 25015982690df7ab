package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[language_model]
provider = "openai"
model = "gpt-4o"
api_key = "sk-test"

[vision_model]
provider = "gemini"
model = "gemini-1.5-pro"

[knowledge]
path = "data/knowledge"
enabled = true

[pipeline]
verbose = true

[graph]
uri = "bolt://localhost:7687"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LanguageModel.Provider)
	assert.Equal(t, "gpt-4o", cfg.LanguageModel.Model)
	assert.Equal(t, "gemini", cfg.VisionModel.Provider)
	assert.True(t, cfg.Knowledge.Enabled)
	assert.True(t, cfg.Pipeline.Verbose)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.MaxRetries)
	assert.Equal(t, "outputs", cfg.Pipeline.OutputDir)
	assert.Equal(t, 5, cfg.Knowledge.MaxTripletsPerEntity)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SMRA_LANGUAGE_MODEL", "gpt-4o-mini")
	t.Setenv("SMRA_VISION_API_KEY", "env-key")
	t.Setenv("SMRA_OUTPUT_DIR", "/tmp/results")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LanguageModel.Model)
	assert.Equal(t, "env-key", cfg.VisionModel.APIKey)
	assert.Equal(t, "/tmp/results", cfg.Pipeline.OutputDir)
	// File values without overrides are untouched.
	assert.Equal(t, "sk-test", cfg.LanguageModel.APIKey)
}

func TestLoadEnvOverridesNonStringFields(t *testing.T) {
	t.Setenv("SMRA_KNOWLEDGE_ENABLED", "false")
	t.Setenv("SMRA_VERBOSE", "true")
	t.Setenv("SMRA_MAX_RETRIES", "7")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.False(t, cfg.Knowledge.Enabled)
	assert.True(t, cfg.Pipeline.Verbose)
	assert.Equal(t, 7, cfg.Pipeline.MaxRetries)
}

func TestLoadEnvOverridesIgnoreUnparseableValues(t *testing.T) {
	t.Setenv("SMRA_MAX_RETRIES", "many")
	t.Setenv("SMRA_VERBOSE", "yep")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.MaxRetries)
	assert.True(t, cfg.Pipeline.Verbose) // file value stands
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[language_model\nprovider ="))
	require.Error(t, err)
}

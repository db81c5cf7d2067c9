package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Arnav", cfg.Owner.Name)
	assert.Equal(t, "phi3:mini", cfg.LLM.DefaultModel)
	assert.Equal(t, "nomic-embed-text", cfg.LLM.EmbeddingModel)
	assert.True(t, cfg.Tools.Capabilities["python_exec"])
	assert.False(t, cfg.Tools.Capabilities["web_search"])
}

func TestLoadFromPathCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astra", "config.yaml")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Arnav", cfg.Owner.Name)

	// The file should now exist on disk.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadFromPathReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
owner:
  name: Priya
llm:
  endpoint: http://localhost:11434
  default_model: mistral:latest
  max_tokens: 200
  temperature: 0.5
memory:
  path: /tmp/astra/memory.json
  vector_path: /tmp/astra/vectors.db
server:
  host: 0.0.0.0
  port: 8080
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Priya", cfg.Owner.Name)
	assert.Equal(t, "mistral:latest", cfg.LLM.DefaultModel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadExpandsHomePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
owner:
  name: Arnav
memory:
  path: ~/astra-memory.json
  vector_path: ~/astra-vectors.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "astra-memory.json"), cfg.Memory.Path)
	assert.Equal(t, filepath.Join(home, "astra-vectors.db"), cfg.Memory.VectorPath)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty owner", func(c *Config) { c.Owner.Name = "" }, "owner.name"},
		{"empty endpoint", func(c *Config) { c.LLM.Endpoint = "" }, "llm.endpoint"},
		{"empty model", func(c *Config) { c.LLM.DefaultModel = "" }, "llm.default_model"},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }, "max_tokens"},
		{"wild temperature", func(c *Config) { c.LLM.Temperature = 3.5 }, "temperature"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := LoadFromPath(path)
	require.NoError(t, err)

	t.Setenv("ASTRA_LLM_DEFAULT_MODEL", "llama3.2:3b")
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "llama3.2:3b", cfg.LLM.DefaultModel)
}

func TestSerperKeyFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("SERPER_API_KEY", "sk-test")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Search.SerperAPIKey)
}

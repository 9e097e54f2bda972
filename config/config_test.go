package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
gemini:
  apiKey: "g-key"
database:
  uri: "mongodb://db:27017/prep"
interview:
  draftTtl: 2h
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash-001", cfg.Gemini.Model)
	assert.Equal(t, 2*time.Hour, cfg.Interview.DraftTTL)
	assert.Equal(t, time.Hour, cfg.Interview.GenerationEvery)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  uri: "mongodb://db:27017/prep"
`)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9999")
	t.Setenv("VAPI_WORKFLOW_ID", "wf-1")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.Openai.GptApiKey)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "wf-1", cfg.Voice.WorkflowID)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/x")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017/x", cfg.Database.URI)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"no database", func(c *Config) { c.Database.URI = "" }, "database uri is required"},
		{"no gemini key", func(c *Config) { c.Gemini.ApiKey = "" }, "gemini api key is required"},
		{"openai without key", func(c *Config) { c.LLM.Provider = "openai" }, "openai api key is required"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "claude" }, "unknown llm provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Database.URI = "mongodb://localhost"
			c.LLM.Provider = "gemini"
			c.Gemini.ApiKey = "k"
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 4000, cfg.OpenAI.MaxTokens)
	require.NotNil(t, cfg.OpenAI.Temperature)
	assert.Equal(t, float32(0.3), *cfg.OpenAI.Temperature)
	assert.Equal(t, "high", cfg.OpenAI.Detail)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, int64(40_000_000), cfg.Upload.MaxPixels)
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, time.Minute, cfg.PurgeEvery())
	assert.Equal(t, 60*time.Second, cfg.OpenAITimeout())
}

func TestYAMLAndEnvOverride(t *testing.T) {
	yml := []byte(`
server:
  port: 9000
openai:
  model: gpt-4o
  temperature: 0
  detail: low
storage:
  driver: Postgres
session:
  ttlMinutes: 5
`)
	cfg, err := Parse(yml, env(map[string]string{
		"OPENAI_API_KEY":     "sk-env",
		"OPENAI_MAX_TOKENS":  "1500",
		"IMAGE_DETAIL_LEVEL": "auto",
	}))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, 1500, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "auto", cfg.OpenAI.Detail)
	// temperature 0 dari yaml tidak diganti default
	assert.Equal(t, float32(0), *cfg.OpenAI.Temperature)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
}

func TestEnvTemperature(t *testing.T) {
	cfg, err := Parse(nil, env(map[string]string{"OPENAI_TEMPERATURE": "0.7"}))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, float64(*cfg.OpenAI.Temperature), 0.0001)

	_, err = Parse(nil, env(map[string]string{"OPENAI_TEMPERATURE": "warm"}))
	assert.ErrorContains(t, err, "OPENAI_TEMPERATURE")
	_, err = Parse(nil, env(map[string]string{"OPENAI_MAX_TOKENS": "lots"}))
	assert.ErrorContains(t, err, "OPENAI_MAX_TOKENS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		want string
	}{
		{"driver", "storage: {driver: redis}", "invalid storage driver"},
		{"detail", "openai: {detail: ultra}", "invalid image detail level"},
		{"quality", "upload: {jpegQuality: 101}", "jpegQuality"},
		{"minio", "minio: {enabled: true}", "minio enabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml), env(nil))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

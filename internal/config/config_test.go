package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/ai"
)

var envKeys = []string{
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "ANTHROPIC_BASE_URL",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"OLLAMA_MODEL", "OLLAMA_SERVER_URL",
	"DEFAULT_PROVIDER", "GITHUB_USERNAME", "GITHUB_TOKEN",
	"REFLEX_DB", "REFLEX_DEBUG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c := Load()
	assert.Empty(t, c.OpenAI.APIKey)
	assert.Equal(t, ai.OllamaDefaultURL, c.Ollama.BaseURL)
	assert.Empty(t, c.DefaultProvider)
	assert.False(t, c.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("GEMINI_API_KEY", " g-key ")
	t.Setenv("OLLAMA_SERVER_URL", "http://gpu-box:11434")
	t.Setenv("DEFAULT_PROVIDER", "Gemini")
	t.Setenv("REFLEX_DEBUG", "true")
	t.Setenv("REFLEX_DB", "/tmp/r.db")

	c := Load()
	assert.Equal(t, "sk-test", c.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", c.OpenAI.Model)
	assert.Equal(t, "g-key", c.Gemini.APIKey)
	assert.Equal(t, "http://gpu-box:11434", c.Ollama.BaseURL)
	assert.Equal(t, "gemini", c.DefaultProvider)
	assert.True(t, c.Debug)
	assert.Equal(t, "/tmp/r.db", c.DBPath)

	cfgs := c.AIConfigs(zap.NewNop())
	require.Len(t, cfgs, 4)
	assert.Equal(t, "sk-test", cfgs[ai.OpenAI].APIKey)
	assert.Equal(t, "http://gpu-box:11434", cfgs[ai.Ollama].BaseURL)
	assert.Equal(t, ai.DefaultTimeout, cfgs[ai.Anthropic].Timeout)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ANTHROPIC_API_KEY=from-file\nDEFAULT_PROVIDER=anthropic\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ANTHROPIC_API_KEY")
		os.Unsetenv("DEFAULT_PROVIDER")
	})
	// godotenv does not override variables that are already set.
	os.Unsetenv("ANTHROPIC_API_KEY")
	os.Unsetenv("DEFAULT_PROVIDER")

	require.NoError(t, LoadDotEnv(path))
	c := Load()
	assert.Equal(t, "from-file", c.Anthropic.APIKey)
	assert.Equal(t, "anthropic", c.DefaultProvider)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestSaveCredentialsMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=keep-me\nGITHUB_USERNAME=old\n"), 0o600))

	require.NoError(t, SaveCredentials(path, map[string]string{
		"GITHUB_USERNAME": "octocat",
		"GITHUB_TOKEN":    "tok",
	}))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"OPENAI_API_KEY":  "keep-me",
		"GITHUB_USERNAME": "octocat",
		"GITHUB_TOKEN":    "tok",
	}, env)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveCredentialsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, SaveCredentials(path, map[string]string{"GITHUB_TOKEN": "tok"}))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", env["GITHUB_TOKEN"])
}

// Package config reads reflex settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/ai"
)

// DotEnvFile is the file loaded from the working directory and written by
// SaveCredentials.
const DotEnvFile = ".env"

// ProviderConfig is the environment configuration of one AI backend.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config is a snapshot of the environment taken once per invocation.
type Config struct {
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Gemini    ProviderConfig
	Ollama    ProviderConfig

	DefaultProvider string

	GitHubUsername string
	GitHubToken    string

	DBPath string
	Debug  bool
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DotEnvFile}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		OpenAI: ProviderConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Anthropic: ProviderConfig{
			APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			Model:   getEnv("ANTHROPIC_MODEL", ""),
			BaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
		},
		Gemini: ProviderConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", ""),
		},
		Ollama: ProviderConfig{
			Model:   getEnv("OLLAMA_MODEL", ""),
			BaseURL: getEnv("OLLAMA_SERVER_URL", ai.OllamaDefaultURL),
		},

		DefaultProvider: strings.ToLower(getEnv("DEFAULT_PROVIDER", "")),

		GitHubUsername: getEnv("GITHUB_USERNAME", ""),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),

		DBPath: getEnv("REFLEX_DB", ""),
		Debug:  getEnvBool("REFLEX_DEBUG", false),
	}
}

// AIConfigs maps the provider settings onto backend configs keyed by
// provider name.
func (c *Config) AIConfigs(log *zap.Logger) map[string]ai.Config {
	conv := func(p ProviderConfig) ai.Config {
		return ai.Config{
			APIKey:  p.APIKey,
			Model:   p.Model,
			BaseURL: p.BaseURL,
			Timeout: ai.DefaultTimeout,
			Logger:  log,
		}
	}
	return map[string]ai.Config{
		ai.OpenAI:    conv(c.OpenAI),
		ai.Anthropic: conv(c.Anthropic),
		ai.Gemini:    conv(c.Gemini),
		ai.Ollama:    conv(c.Ollama),
	}
}

// SaveCredentials merges values into the .env file at path, creating it if
// needed. Existing keys not in values are preserved.
func SaveCredentials(path string, values map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		env = make(map[string]string, len(values))
	}
	for k, v := range values {
		env[k] = v
	}
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

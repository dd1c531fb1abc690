// Package config holds the unified application configuration: one YAML
// file with sections per subsystem, defaults that work out of the box
// with a local Ollama instance, and environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"trackpulse/internal/embedding"
	"trackpulse/internal/llm"
	"trackpulse/internal/logging"
)

// defaultRoleText is the persona forwarded as the completion system
// text on every grounded request.
const defaultRoleText = `You are an expert project management assistant. ` +
	`You analyze project tracking data extracted from spreadsheets: statuses, ` +
	`progress percentages, delays, pending tasks and team assignments. Answer ` +
	`only from the provided context. When the context lacks the information, ` +
	`say so instead of guessing. Be concrete and actionable.`

// Config holds all trackpulse configuration.
type Config struct {
	// LLM configures the completion service.
	LLM llm.Config `yaml:"llm"`

	// Embedding configures the embedding engine.
	Embedding embedding.Config `yaml:"embedding"`

	// Index configures the local vector index.
	Index IndexConfig `yaml:"index"`

	// Logging configures categorized file logging.
	Logging logging.Config `yaml:"logging"`

	// RoleText is the assistant persona used for every completion.
	RoleText string `yaml:"role_text"`
}

// IndexConfig configures the local vector index.
type IndexConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM:       llm.DefaultConfig(),
		Embedding: embedding.DefaultConfig(),
		Index: IndexConfig{
			DatabasePath: "data/trackpulse.db",
		},
		Logging: logging.Config{
			Enabled: true,
			Dir:     "logs",
			Level:   "info",
		},
		RoleText: defaultRoleText,
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error: defaults apply. Environment overrides run last either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. Secrets
// never belong in the YAML file, so keys come from the environment.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.Embedding.GenAIAPIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.Provider == "openai" {
		c.LLM.APIKey = key
	}
	if endpoint := os.Getenv("OLLAMA_ENDPOINT"); endpoint != "" {
		c.Embedding.OllamaEndpoint = endpoint
	}
	if path := os.Getenv("TRACKPULSE_DB"); path != "" {
		c.Index.DatabasePath = path
	}
}

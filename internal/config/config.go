// Package config loads the demo binary's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultEmbeddingSize = 256
	defaultRetrieveLimit = 2
	defaultMaxIterations = 20
)

// Config is the top-level toolscout configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Store    StoreConfig    `yaml:"store"`
	Agent    AgentConfig    `yaml:"agent"`
}

// ProviderConfig holds LLM provider settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// StoreConfig selects and configures the tool store backend.
type StoreConfig struct {
	Backend       string `yaml:"backend,omitempty"` // "memory" (default) or "sqlite"
	Path          string `yaml:"path,omitempty"`    // sqlite database file
	EmbeddingSize int    `yaml:"embedding_size,omitempty"`
}

// AgentConfig holds loop-level settings.
type AgentConfig struct {
	SystemPrompt  string `yaml:"system_prompt,omitempty"`
	RetrieveLimit int    `yaml:"retrieve_limit,omitempty"`
	MaxIterations int    `yaml:"max_iterations,omitempty"`
}

// Load reads configuration from a YAML file, applies defaults, and
// validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if c.Store.EmbeddingSize <= 0 {
		c.Store.EmbeddingSize = defaultEmbeddingSize
	}
	if c.Agent.RetrieveLimit <= 0 {
		c.Agent.RetrieveLimit = defaultRetrieveLimit
	}
	if c.Agent.MaxIterations <= 0 {
		c.Agent.MaxIterations = defaultMaxIterations
	}
}

func (c *Config) validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("config: provider.api_key is required (or set OPENAI_API_KEY)")
	}
	switch c.Store.Backend {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	return nil
}

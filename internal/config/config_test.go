package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolscout.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
provider:
  api_key: test-key
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected memory backend default, got %q", cfg.Store.Backend)
	}
	if cfg.Store.EmbeddingSize != defaultEmbeddingSize {
		t.Errorf("expected default embedding size, got %d", cfg.Store.EmbeddingSize)
	}
	if cfg.Agent.RetrieveLimit != defaultRetrieveLimit {
		t.Errorf("expected default retrieve limit, got %d", cfg.Agent.RetrieveLimit)
	}
	if cfg.Agent.MaxIterations != defaultMaxIterations {
		t.Errorf("expected default max iterations, got %d", cfg.Agent.MaxIterations)
	}
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
provider:
  api_key: test-key
  base_url: http://localhost:8080/v1
  model: test-model
store:
  backend: sqlite
  path: /tmp/tools.db
  embedding_size: 128
agent:
  system_prompt: "You are a calculator."
  retrieve_limit: 5
  max_iterations: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Model != "test-model" {
		t.Errorf("model: got %q", cfg.Provider.Model)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "/tmp/tools.db" {
		t.Errorf("store: got %+v", cfg.Store)
	}
	if cfg.Agent.RetrieveLimit != 5 || cfg.Agent.MaxIterations != 10 {
		t.Errorf("agent: got %+v", cfg.Agent)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"sqlite without path", "provider:\n  api_key: k\nstore:\n  backend: sqlite\n"},
		{"unknown backend", "provider:\n  api_key: k\nstore:\n  backend: redis\n"},
		{"malformed yaml", "provider: [not, a, map\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	cfg, err := Load(writeConfig(t, "provider: {}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("expected env fallback, got %q", cfg.Provider.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveToken(t *testing.T) {
	t.Run("configured token", func(t *testing.T) {
		cfg := &Config{Token: "hf_config"}

		oldToken := os.Getenv("HF_TOKEN")
		os.Unsetenv("HF_TOKEN")
		defer os.Setenv("HF_TOKEN", oldToken)

		if cfg.ResolveToken() != "hf_config" {
			t.Errorf("expected 'hf_config', got %q", cfg.ResolveToken())
		}
	})

	t.Run("env takes precedence", func(t *testing.T) {
		cfg := &Config{Token: "hf_config"}

		oldToken := os.Getenv("HF_TOKEN")
		os.Setenv("HF_TOKEN", "hf_env")
		defer os.Setenv("HF_TOKEN", oldToken)

		if cfg.ResolveToken() != "hf_env" {
			t.Errorf("expected 'hf_env', got %q", cfg.ResolveToken())
		}
	})

	t.Run("empty when nothing configured", func(t *testing.T) {
		cfg := &Config{}

		oldToken := os.Getenv("HF_TOKEN")
		os.Unsetenv("HF_TOKEN")
		defer os.Setenv("HF_TOKEN", oldToken)

		if cfg.ResolveToken() != "" {
			t.Errorf("expected empty string, got %q", cfg.ResolveToken())
		}
	})
}

func TestResolveEndpoint(t *testing.T) {
	t.Run("configured endpoint", func(t *testing.T) {
		cfg := &Config{Endpoint: "https://mirror.example"}

		oldEndpoint := os.Getenv("HF_ENDPOINT")
		os.Unsetenv("HF_ENDPOINT")
		defer os.Setenv("HF_ENDPOINT", oldEndpoint)

		if cfg.ResolveEndpoint() != "https://mirror.example" {
			t.Errorf("expected mirror endpoint, got %q", cfg.ResolveEndpoint())
		}
	})

	t.Run("env takes precedence", func(t *testing.T) {
		cfg := &Config{Endpoint: "https://mirror.example"}

		oldEndpoint := os.Getenv("HF_ENDPOINT")
		os.Setenv("HF_ENDPOINT", "https://staging.example")
		defer os.Setenv("HF_ENDPOINT", oldEndpoint)

		if cfg.ResolveEndpoint() != "https://staging.example" {
			t.Errorf("expected staging endpoint, got %q", cfg.ResolveEndpoint())
		}
	})
}

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `endpoint = "https://mirror.example"
token = "hf_abc"
default_limit = 10
cache_ttl_minutes = 30

[ui]
accent = "39"
code_theme = "dracula"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Endpoint != "https://mirror.example" {
		t.Errorf("expected endpoint 'https://mirror.example', got %q", cfg.Endpoint)
	}
	if cfg.Token != "hf_abc" {
		t.Errorf("expected token 'hf_abc', got %q", cfg.Token)
	}
	if cfg.DefaultLimit != 10 {
		t.Errorf("expected default_limit 10, got %d", cfg.DefaultLimit)
	}
	if cfg.CacheTTLMinutes != 30 {
		t.Errorf("expected cache_ttl_minutes 30, got %d", cfg.CacheTTLMinutes)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("expected ui.accent '39', got %q", cfg.UI.Accent)
	}
	if cfg.UI.CodeTheme != "dracula" {
		t.Errorf("expected ui.code_theme 'dracula', got %q", cfg.UI.CodeTheme)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Invalid TOML
	content := `this is not valid toml {{{{`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad(t *testing.T) {
	// Load should return empty config when file doesn't exist
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Should return a valid (possibly empty) config
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

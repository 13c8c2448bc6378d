// Package config handles global hubcard configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global hubcard configuration.
type Config struct {
	// Endpoint is the Hub base URL. Defaults to the public Hub.
	Endpoint string `toml:"endpoint"`

	// Token is the Hub access token. The HF_TOKEN environment variable
	// takes precedence so tokens can stay out of the config file.
	Token string `toml:"token"`

	// DefaultLimit caps search results when no --limit is given.
	DefaultLimit int `toml:"default_limit"`

	// CacheTTLMinutes is how long fetched cards are served from the
	// local cache. Zero uses the built-in default.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// ResolveToken returns the access token, preferring $HF_TOKEN.
func (c *Config) ResolveToken() string {
	if env := os.Getenv("HF_TOKEN"); env != "" {
		return env
	}
	return c.Token
}

// ResolveEndpoint returns the Hub endpoint, preferring $HF_ENDPOINT.
func (c *Config) ResolveEndpoint() string {
	if env := os.Getenv("HF_ENDPOINT"); env != "" {
		return env
	}
	return c.Endpoint
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/hubcard/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	// Prefer XDG-style ~/.config/hubcard/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "hubcard", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	// Fall back to XDG config dir or OS-specific location
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "hubcard", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# hubcard Configuration

# Hub base URL (defaults to https://huggingface.co).
# The HF_ENDPOINT environment variable takes precedence.
# endpoint = "https://huggingface.co"

# Access token for authenticated requests and update proposals.
# Prefer the HF_TOKEN environment variable over storing it here.
# token = "hf_..."

# Default number of search results
# default_limit = 20

# Minutes a fetched model card is served from the local cache
# cache_ttl_minutes = 15

# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

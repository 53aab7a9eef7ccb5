package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2442
	defaultEnv        = "development"

	// EnvForceMock forces fallback-mode plan generation process-wide.
	EnvForceMock = "RUTA_MOCK_PLAN"
)

// Load reads and validates the YAML config, then applies environment overrides.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	for i, provider := range cfg.AI.Providers {
		if strings.TrimSpace(provider.ID) == "" {
			return nil, fmt.Errorf("ai.providers[%d] is missing an id in %q", i, path)
		}
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if isTruthyEnv(os.Getenv(EnvForceMock)) {
		cfg.Plan.ForceMock = true
	}
	if key := strings.TrimSpace(os.Getenv("RUTA_AI_API_KEY")); key != "" {
		for i := range cfg.AI.Providers {
			if cfg.AI.Providers[i].APIKey == "" {
				cfg.AI.Providers[i].APIKey = key
			}
		}
	}
	if secret := strings.TrimSpace(os.Getenv("RUTA_JWT_SECRET")); secret != "" {
		cfg.JWTSecret = secret
	}
}

func isTruthyEnv(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// HasCredentials reports whether at least one enabled AI provider carries an
// API key. The orchestrator recovers into the fallback plan when this is false.
func (c *AppConfig) HasCredentials() bool {
	for _, provider := range c.AI.Providers {
		if provider.Enabled && strings.TrimSpace(provider.APIKey) != "" {
			return true
		}
	}
	return false
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ClientConfig holds the CLI preferences persisted under ~/.blinky.
type ClientConfig struct {
	ServerURL string `yaml:"server_url"`
}

// DefaultClientConfig returns the settings used when no config file exists.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnv("BLINKY_SERVER_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".blinky", "config.yaml"), nil
}

// LoadClientConfig loads config from ~/.blinky/config.yaml, falling back to
// defaults when the file does not exist.
func LoadClientConfig() (*ClientConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultClientConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultClientConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to ~/.blinky/config.yaml, creating the directory
// if needed.
func (c *ClientConfig) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

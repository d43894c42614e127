package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveConfigPath decides the config file path using the flag-provided
// value and the environment variable `JOURNALDB_CONFIG` when the flag
// was not set.
func ResolveConfigPath(flagPath string, flagSet bool) string {
	if flagSet {
		return flagPath
	}
	if p := os.Getenv("JOURNALDB_CONFIG"); p != "" {
		return p
	}
	return flagPath
}

// APIKey resolves the upstream LLM API key from the configured env var.
func (l LLMConfig) APIKey() string {
	name := l.APIKeyEnv
	if name == "" {
		name = "OPENAI_API_KEY"
	}
	return os.Getenv(name)
}

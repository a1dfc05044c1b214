// Package config loads the earnlybot runtime configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config is the top-level configuration, corresponding to .earnlybot.yml.
type Config struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	KnowledgeGlob   string `yaml:"knowledge_glob" koanf:"knowledge_glob"`
	DefaultLanguage string `yaml:"default_language" koanf:"default_language"`
	PersistChats    bool   `yaml:"persist_chats" koanf:"persist_chats"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:            8090,
		DataDir:         "data",
		KnowledgeGlob:   "kb/*.yml",
		DefaultLanguage: "en",
		PersistChats:    true,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (EARNLYBOT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: EARNLYBOT_PORT -> port, etc.
	if err := k.Load(env.Provider("EARNLYBOT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "EARNLYBOT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.KnowledgeGlob == "" {
		return fmt.Errorf("knowledge_glob is required")
	}
	if c.DefaultLanguage != "en" && c.DefaultLanguage != "ur" {
		return fmt.Errorf("invalid default_language %q: must be en or ur", c.DefaultLanguage)
	}
	if c.PersistChats && c.DataDir == "" {
		return fmt.Errorf("data_dir is required when persist_chats is enabled")
	}
	return nil
}

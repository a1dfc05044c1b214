package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Port != 8090 {
		t.Errorf("default port = %d", cfg.Port)
	}
	if cfg.KnowledgeGlob == "" {
		t.Error("default knowledge glob empty")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != DefaultConfig().Port {
		t.Errorf("port = %d, want default", cfg.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".earnlybot.yml")
	content := "port: 9000\ndefault_language: ur\npersist_chats: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Port)
	}
	if cfg.DefaultLanguage != "ur" {
		t.Errorf("default_language = %q, want ur", cfg.DefaultLanguage)
	}
	if cfg.PersistChats {
		t.Error("persist_chats should be false")
	}
	// Unset keys keep their defaults.
	if cfg.DataDir != "data" {
		t.Errorf("data_dir = %q, want default", cfg.DataDir)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EARNLYBOT_PORT", "7777")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7777 {
		t.Errorf("port = %d, want env override 7777", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = -1 }},
		{"empty glob", func(c *Config) { c.KnowledgeGlob = "" }},
		{"bad language", func(c *Config) { c.DefaultLanguage = "fr" }},
		{"persist without data dir", func(c *Config) { c.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Language != "en" {
		t.Errorf("Language = %s, want en", cfg.Language)
	}
	if cfg.SeedSet {
		t.Error("SeedSet = true, want false when HAIKU_SEED is unset")
	}
	if cfg.MaxSteps != 10000 {
		t.Errorf("MaxSteps = %d, want 10000", cfg.MaxSteps)
	}
	if cfg.MaxSeedDraws != 10000 {
		t.Errorf("MaxSeedDraws = %d, want 10000", cfg.MaxSeedDraws)
	}
	if !cfg.CacheModels {
		t.Error("CacheModels = false, want true")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "haiku" {
		t.Errorf("CharmDBName = %s, want haiku", cfg.CharmDBName)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	t.Setenv("HAIKU_CORPUS", "/tmp/train.txt")
	t.Setenv("HAIKU_DICT", "/tmp/cmudict.dict")
	t.Setenv("HAIKU_OVERRIDES", "/tmp/missing.yaml")
	t.Setenv("HAIKU_LANG", "ja")
	t.Setenv("HAIKU_SEED", "42")
	t.Setenv("HAIKU_MAX_STEPS", "500")
	t.Setenv("HAIKU_MAX_SEED_DRAWS", "50")
	t.Setenv("HAIKU_CACHE_MODELS", "false")
	t.Setenv("HAIKU_LOG_LEVEL", "debug")
	t.Setenv("OPENAI_RETRY_DELAY", "3s")
	t.Setenv("CHARM_AUTO_SYNC", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CorpusPath != "/tmp/train.txt" {
		t.Errorf("CorpusPath = %s", cfg.CorpusPath)
	}
	if cfg.DictPath != "/tmp/cmudict.dict" {
		t.Errorf("DictPath = %s", cfg.DictPath)
	}
	if cfg.OverridesPath != "/tmp/missing.yaml" {
		t.Errorf("OverridesPath = %s", cfg.OverridesPath)
	}
	if cfg.Language != "ja" {
		t.Errorf("Language = %s, want ja", cfg.Language)
	}
	if !cfg.SeedSet || cfg.Seed != 42 {
		t.Errorf("Seed = %d (set=%v), want 42 (set=true)", cfg.Seed, cfg.SeedSet)
	}
	if cfg.MaxSteps != 500 {
		t.Errorf("MaxSteps = %d, want 500", cfg.MaxSteps)
	}
	if cfg.MaxSeedDraws != 50 {
		t.Errorf("MaxSeedDraws = %d, want 50", cfg.MaxSeedDraws)
	}
	if cfg.CacheModels {
		t.Error("CacheModels = true, want false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	os.Clearenv()
	t.Setenv("HAIKU_SEED", "not-a-number")
	t.Setenv("HAIKU_MAX_STEPS", "lots")
	t.Setenv("OPENAI_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.SeedSet {
		t.Error("unparseable HAIKU_SEED should leave SeedSet false")
	}
	if cfg.MaxSteps != 10000 {
		t.Errorf("MaxSteps = %d, want default 10000", cfg.MaxSteps)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown language", func(c *Config) { c.Language = "fr" }, true},
		{"zero max steps", func(c *Config) { c.MaxSteps = 0 }, true},
		{"negative seed draws", func(c *Config) { c.MaxSeedDraws = -1 }, true},
		{"too many retries", func(c *Config) { c.MaxRetries = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Language: "en", MaxSteps: 10, MaxSeedDraws: 10, MaxRetries: 3}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

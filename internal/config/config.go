// ABOUTME: Centralized configuration for the haiku generator
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the haiku generator
type Config struct {
	// Corpus and syllable sources
	CorpusPath    string
	DictPath      string
	OverridesPath string
	Language      string

	// Generation settings
	Seed         uint64
	SeedSet      bool
	MaxSteps     int
	MaxSeedDraws int
	CacheModels  bool
	LogLevel     string
	DataDir      string

	// OpenAI settings (remote syllable resolver)
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	seed, seedSet := getEnvUint64("HAIKU_SEED")
	cfg := &Config{
		// Defaults
		CorpusPath:    os.Getenv("HAIKU_CORPUS"),
		DictPath:      os.Getenv("HAIKU_DICT"),
		OverridesPath: os.Getenv("HAIKU_OVERRIDES"),
		Language:      getEnv("HAIKU_LANG", "en"),
		Seed:          seed,
		SeedSet:       seedSet,
		MaxSteps:      getEnvInt("HAIKU_MAX_STEPS", 10000),
		MaxSeedDraws:  getEnvInt("HAIKU_MAX_SEED_DRAWS", 10000),
		CacheModels:   getEnvBool("HAIKU_CACHE_MODELS", true),
		LogLevel:      getEnv("HAIKU_LOG_LEVEL", "warn"),
		DataDir:       os.Getenv("HAIKU_DATA_DIR"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		ChatModel:     getEnv("HAIKU_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:       getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:    getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:    getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		CharmHost:     getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:   getEnv("CHARM_DB", "haiku"),
		AutoSync:      getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Language != "en" && c.Language != "ja" {
		return fmt.Errorf("HAIKU_LANG must be en or ja, got %q", c.Language)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("HAIKU_MAX_STEPS must be positive, got %d", c.MaxSteps)
	}
	if c.MaxSeedDraws < 1 {
		return fmt.Errorf("HAIKU_MAX_SEED_DRAWS must be positive, got %d", c.MaxSeedDraws)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvUint64 reports whether key held a parseable seed.
func getEnvUint64(key string) (uint64, bool) {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u, true
		}
	}
	return 0, false
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

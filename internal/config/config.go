// Package config loads server settings from an optional .env file and the
// process environment
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by STORAGE_TYPE
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageBolt   = "bolt"
)

// Config holds every server setting
type Config struct {
	Addr           string
	AdminID        string
	AdminTokenHash string

	LocationsPath  string
	DictionaryPath string
	RulesPath      string

	StorageType string
	StatePath   string
	RedisURL    string
	BoltPath    string

	InactivityThreshold time.Duration
	LogLevel            slog.Level
}

// Default returns the configuration used when no variable is set
func Default() Config {
	return Config{
		Addr:                ":8080",
		LocationsPath:       "data/locations.json",
		DictionaryPath:      "data/words.txt",
		RulesPath:           "data/rules.txt",
		StorageType:         StorageFile,
		StatePath:           "data/game_state.json",
		BoltPath:            "data/kabak.db",
		InactivityThreshold: 7 * 24 * time.Hour,
		LogLevel:            slog.LevelInfo,
	}
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing .env files are ignored; variables already set in the
// environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a variable lookup function
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	get := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	get("KABAK_ADDR", &cfg.Addr)
	get("ADMIN_ID", &cfg.AdminID)
	get("ADMIN_TOKEN_HASH", &cfg.AdminTokenHash)
	get("LOCATIONS_PATH", &cfg.LocationsPath)
	get("DICTIONARY_PATH", &cfg.DictionaryPath)
	get("RULES_PATH", &cfg.RulesPath)
	get("STORAGE_TYPE", &cfg.StorageType)
	get("STATE_PATH", &cfg.StatePath)
	get("REDIS_URL", &cfg.RedisURL)
	get("BOLT_PATH", &cfg.BoltPath)

	var threshold, level string
	get("INACTIVITY_THRESHOLD", &threshold)
	get("LOG_LEVEL", &level)

	if threshold != "" {
		d, err := time.ParseDuration(threshold)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("INACTIVITY_THRESHOLD must be a non-negative duration, got %q", threshold)
		}
		cfg.InactivityThreshold = d
	}
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	cfg.StorageType = strings.ToLower(cfg.StorageType)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required and mutually dependent settings
func (c *Config) Validate() error {
	if c.AdminID == "" {
		return errors.New("ADMIN_ID is required")
	}
	switch c.StorageType {
	case StorageFile, StorageMemory, StorageBolt:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be one of file, memory, redis, bolt", c.StorageType)
	}
	return nil
}
